package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huntrbrooks/Money-sub001/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending remote schema migrations",
	Long: `Apply the goose migrations for TABLE_PREFIX against SUPABASE_DB_URL.
Each prefix has its own version table, so dev_, test_ and prod tables
migrate independently.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := app.Migrate(commandContext(cmd), cfg, cliLogger()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (prefix %q)\n", cfg.TablePrefix)
	return nil
}
