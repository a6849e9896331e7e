package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"playpal-backend-go/internal/app"
)

func verifyUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-user",
		Short: "Mark a test account's email as verified",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, _ := cmd.Flags().GetString("uid")
			if uid == "" {
				return fmt.Errorf("missing --uid")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				email, err := a.Verification.VerifyTestUser(ctx, uid)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Verified: %s\n", email)
				return nil
			})
		},
	}
	cmd.Flags().String("uid", "", "Firebase Auth UID of the test account")
	return cmd
}
