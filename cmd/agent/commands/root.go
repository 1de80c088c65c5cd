package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agent",
		Short: "Vani page agent",
		Long: `Drives a local browser for the Vani assistant server.

Examples:
  agent token --agent-id laptop
  agent run --hub ws://localhost:3000/api/v1/assistant/agent --token <jwt>`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newTokenCmd(),
	)

	return rootCmd
}
