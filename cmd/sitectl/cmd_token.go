package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/huntrbrooks/Money-sub001/internal/app"
	"github.com/huntrbrooks/Money-sub001/internal/auth"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

// tokenCmd groups admin session token commands
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and inspect admin session tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a session token signed with ADMIN_AUTH_SECRET",
	Long: `Issue a session token for an allow-listed admin user. The token is the
value of the admin_session cookie.`,
	Args: cobra.NoArgs,
	RunE: runTokenIssue,
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Check a session token and print its user and expiry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenVerify,
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenUser, "user", "", "admin username (must be in ADMIN_CREDENTIALS)")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default SESSION_TTL)")
	_ = tokenIssueCmd.MarkFlagRequired("user")

	tokenCmd.AddCommand(tokenIssueCmd, tokenVerifyCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		user := strings.TrimSpace(tokenUser)
		if _, ok := a.Config.AdminCredentials[user]; !ok {
			return fmt.Errorf("user %q is not in ADMIN_CREDENTIALS", user)
		}

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = a.Config.SessionTTL
		}

		cred := auth.NewCredential(user, ttl, time.Now())
		token, err := a.Codec.Issue(cred)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	})
}

func runTokenVerify(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		cred, err := a.Auth.Authenticate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("token is not valid")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "valid: user=%s expires=%s\n",
			cred.Username, time.Unix(cred.ExpiresAt, 0).UTC().Format(time.RFC3339))
		return nil
	})
}
