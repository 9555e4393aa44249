package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/huntrbrooks/Money-sub001/internal/app"
	"github.com/huntrbrooks/Money-sub001/internal/config"
)

var (
	versionsLimit int
	applySave     bool
)

// configCmd groups site configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the site configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current document with defaults merged in",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List saved versions, newest first (remote tier only)",
	Args:  cobra.NoArgs,
	RunE:  runConfigVersions,
}

var configRollbackCmd = &cobra.Command{
	Use:   "rollback <version-id>",
	Short: "Save a past version as the current document (remote tier only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigRollback,
}

var configApplyCmd = &cobra.Command{
	Use:   "apply <instruction>",
	Short: "Apply a free-text instruction to the document",
	Long: `Apply a free-text instruction such as

  sitectl config apply 'set primary color to #112233 and add service "Intake Call" price $50'

and print the matched rules and the resulting document. Nothing is saved
unless --save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigApply,
}

func init() {
	configVersionsCmd.Flags().IntVar(&versionsLimit, "limit", config.DefaultVersionListLimit, "maximum number of versions")
	configApplyCmd.Flags().BoolVar(&applySave, "save", false, "persist the result")

	configCmd.AddCommand(configShowCmd, configVersionsCmd, configRollbackCmd, configApplyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		doc, err := a.SiteConfig.Read(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), doc)
	})
}

func runConfigVersions(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		versions, err := a.SiteConfig.ListVersions(ctx, versionsLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED")
		for _, v := range versions {
			fmt.Fprintf(tw, "%s\t%s\n", v.ID, v.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		}
		return tw.Flush()
	})
}

func runConfigRollback(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		res, err := a.SiteConfig.Rollback(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back to %s as version %s\n", args[0], res.Version)
		return nil
	})
}

func runConfigApply(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		res, err := a.Assistant.Apply(ctx, args[0], applySave)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(res.Changes) == 0 {
			fmt.Fprintln(out, "no rules matched; configuration unchanged")
			return nil
		}
		for _, c := range res.Changes {
			fmt.Fprintf(out, "%-16s %s\n", c.Rule, c.Match)
		}
		if res.Saved {
			fmt.Fprintf(out, "saved (version %q)\n", res.Version)
			return nil
		}
		fmt.Fprintln(out, "preview only; rerun with --save to persist")
		return printJSON(out, res.Config)
	})
}
