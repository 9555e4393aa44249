package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/huntrbrooks/Money-sub001/internal/app"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// contentCmd groups content entry commands
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect posts and videos",
}

var contentListCmd = &cobra.Command{
	Use:       "list <posts|videos>",
	Short:     "List entries of a type, newest first, with their source tier",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.ContentPosts), string(models.ContentVideos)},
	RunE:      runContentList,
}

func init() {
	contentCmd.AddCommand(contentListCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentList(cmd *cobra.Command, args []string) error {
	contentType, err := models.ParseContentType(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		entries, err := a.Content.List(ctx, contentType)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SLUG\tDATE\tSOURCE\tTITLE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%v\t%s\t%v\n", e.Slug, field(e, "date"), e.Source, field(e, "title"))
		}
		return tw.Flush()
	})
}

func field(e models.ContentSummary, key string) interface{} {
	if v, ok := e.Fields[key]; ok && v != nil {
		return v
	}
	return "-"
}
