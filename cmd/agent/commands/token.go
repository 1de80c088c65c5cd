package commands

import (
	jwtPkg "VaniAssistant/pkg/jwt"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		agentID string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an agent token with " + jwtPkg.AgentSecretEnv,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if agentID == "" {
				return fmt.Errorf("--agent-id is required")
			}

			token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{"sub": agentID}, ttl, jwtPkg.AgentSecretEnv)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&agentID, "agent-id", "", "identity carried in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")

	return cmd
}
