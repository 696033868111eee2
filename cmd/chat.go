package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/connorhough/aiwire/internal/chat"
)

func newChatCmd() *cobra.Command {
	var (
		model       string
		temperature float64
		maxTokens   int
	)

	chatCmd := &cobra.Command{
		Use:   "chat \"prompt\"",
		Short: "Send a prompt to the active chat model",
		Long: `Send a single prompt to the chat model selected by configuration and print
the reply. Flags override the configured default options for this call only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ov chat.Overrides
			if cmd.Flags().Changed("model") {
				ov.Model = &model
			}
			if cmd.Flags().Changed("temperature") {
				ov.Temperature = &temperature
			}
			if cmd.Flags().Changed("max-tokens") {
				ov.MaxTokens = &maxTokens
			}

			reg, err := assemble(cmd)
			if err != nil {
				return err
			}

			reply, err := chat.Run(cmd.Context(), reg, strings.Join(args, " "), ov)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	chatCmd.Flags().StringVar(&model, "model", "", "model to use for this call")
	chatCmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	chatCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum number of tokens to generate")

	return chatCmd
}
