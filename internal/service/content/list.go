package content

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/utils"
)

// dateField is the front matter key listings are ordered by.
const dateField = "date"

// List merges local and remote entries by slug, remote winning, and sorts
// them by date, newest first. The local scan and the remote query run
// concurrently.
func (s *Service) List(ctx context.Context, contentType models.ContentType) ([]models.ContentSummary, error) {
	if err := validateType(contentType); err != nil {
		return nil, err
	}

	var localEntries, remoteEntries []models.ContentEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.local.List(gctx, contentType)
		if err != nil {
			return fmt.Errorf("list local %s: %w", contentType, err)
		}
		localEntries = entries
		return nil
	})
	if s.remote != nil {
		g.Go(func() error {
			entries, err := s.remote.List(gctx, contentType)
			if err != nil {
				return fmt.Errorf("list remote %s: %w", contentType, err)
			}
			remoteEntries = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bySlug := make(map[string]models.ContentSummary, len(localEntries)+len(remoteEntries))
	for _, entries := range [][]models.ContentEntry{localEntries, remoteEntries} {
		for _, entry := range entries {
			// a remote entry shadows the local seed even when it cannot be listed
			delete(bySlug, entry.Slug)

			meta, _, err := utils.ParseFrontmatter([]byte(entry.Body))
			if err != nil {
				s.logger.Warn("skipping entry with malformed front matter",
					"type", contentType,
					"slug", entry.Slug,
					"source", entry.Source,
					"error", err,
				)
				continue
			}
			bySlug[entry.Slug] = models.ContentSummary{
				Slug:   entry.Slug,
				Source: entry.Source,
				Fields: meta,
			}
		}
	}

	summaries := make([]models.ContentSummary, 0, len(bySlug))
	for _, summary := range bySlug {
		summaries = append(summaries, summary)
	}
	SortByDateDesc(summaries)

	s.logger.Debug("content listed",
		"type", contentType,
		"local", len(localEntries),
		"remote", len(remoteEntries),
		"merged", len(summaries),
		"remote_configured", s.remote != nil,
	)

	return summaries, nil
}

var dateLayouts = []string{time.RFC3339, time.DateOnly, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rawDate(summary models.ContentSummary) string {
	v, ok := summary.Fields[dateField]
	if !ok || v == nil {
		return ""
	}
	switch d := v.(type) {
	case string:
		return d
	case time.Time:
		return utils.FormatDate(d)
	}
	return fmt.Sprint(v)
}

// SortByDateDesc orders summaries newest first. Two parseable dates are
// compared as times; otherwise the raw values are compared as strings.
// Ties fall back to slug order.
func SortByDateDesc(summaries []models.ContentSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := rawDate(summaries[i]), rawDate(summaries[j])
		ta, okA := parseDate(a)
		tb, okB := parseDate(b)
		switch {
		case okA && okB && !ta.Equal(tb):
			return ta.After(tb)
		case !(okA && okB) && a != b:
			return a > b
		}
		return summaries[i].Slug < summaries[j].Slug
	})
}
