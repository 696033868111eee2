package cmd

import (
	"github.com/spf13/cobra"

	"github.com/connorhough/aiwire/internal/embed"
)

func newEmbedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed \"text\" [\"text\"...]",
		Short: "Embed texts with the active embedding model",
		Long:  `Embed each argument with the embedding model selected by configuration and print one JSON object per line.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := assemble(cmd)
			if err != nil {
				return err
			}
			vectors, err := embed.Run(cmd.Context(), reg, args)
			if err != nil {
				return err
			}
			return embed.Write(cmd.OutOrStdout(), vectors)
		},
	}
}
