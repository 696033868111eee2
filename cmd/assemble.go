package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connorhough/aiwire/internal/registry"
	"github.com/connorhough/aiwire/internal/session"
)

func newAssembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assemble",
		Short: "Show which provider backs each capability",
		Long: `Resolve configuration, assemble the default models and print the provider
and model chosen for each capability. A capability nothing could satisfy is
shown with dashes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := assemble(cmd)
			if err != nil {
				return err
			}
			return session.Describe(cmd.OutOrStdout(), reg)
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "options <chat|embedding>",
		Short:     "Print the default options of a capability as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chat", "embedding"},
		RunE: func(cmd *cobra.Command, args []string) error {
			capability, err := session.ParseCapability(args[0])
			if err != nil {
				return err
			}
			reg, err := assemble(cmd)
			if err != nil {
				return err
			}
			out, err := session.DefaultOptions(reg, capability)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func assemble(cmd *cobra.Command) (*registry.Memory, error) {
	return session.Assemble(cmd.Context(), viper.GetViper(), selection(), slog.Default())
}
