package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
	"github.com/custodia-labs/gdata-go/internal/logger"
)

var (
	fetchCursor string
	fetchPages  int
	fetchJSON   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <feed> [arg]",
	Short: "Fetch pages of a feed",
	Long: `Fetches one or more pages of a feed and lists the entries.

When more results remain, a cursor is printed that --cursor accepts to
continue from the following page.

Examples:
  gdata fetch youtube/search --param q=cats --pages 3
  gdata fetch tasks/tasks MDk3NjQ --cursor <cursor>
  gdata fetch freebase/search --param q=cheese --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func init() {
	addParamFlag(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchCursor, "cursor", "", "continue from a cursor printed by an earlier fetch")
	fetchCmd.Flags().IntVarP(&fetchPages, "pages", "n", 1, "maximum number of pages to fetch")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(fetchCmd)
}

// fetchResult is the outcome of fetching pages of a feed.
type fetchResult struct {
	Items  []feedItem `json:"items"`
	Pages  int        `json:"pages"`
	Cursor string     `json:"cursor,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	f, arg, err := feedArgs(args)
	if err != nil {
		return err
	}
	values, err := parseParams(params)
	if err != nil {
		return err
	}
	if fetchPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	q, err := f.buildQuery(values, arg, fetchCursor)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := newService(ctx, f.Service)
	if err != nil {
		return err
	}

	result, err := fetchPagesOf(ctx, svc, f, q, arg, fetchPages)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if fetchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	printFetchResult(cmd, f, result)
	return nil
}

// fetchPagesOf fetches up to pages pages of f, advancing q between them.
// The returned cursor is empty once the feed is exhausted.
func fetchPagesOf(
	ctx context.Context,
	svc *google.Service,
	f *feed,
	q gdata.Querier,
	arg string,
	pages int,
) (*fetchResult, error) {
	log := logger.Component("fetch")
	result := &fetchResult{}
	base := q.Base()

	for result.Pages < pages {
		if result.Pages > 0 {
			base.NextPage()
			if base.IsFinished() {
				return result, nil
			}
		}

		page, err := f.Fetch(ctx, svc, q, arg)
		if err != nil {
			return nil, err
		}
		result.Pages++
		result.Items = append(result.Items, page.Items...)
		log.Debug().Str("feed", f.Name).Int("page", result.Pages).Int("entries", len(page.Items)).Msg("fetched page")

		if f.Single || len(page.Items) == 0 || isLastPage(base, len(page.Items)) {
			result.Cursor = ""
			return result, nil
		}
		result.Cursor = base.Cursor().Encode()
	}
	return result, nil
}

// isLastPage reports whether a page of n entries ends the results. Indexed
// feeds end on a short page; linked feeds end when the server gave nothing
// to continue with.
func isLastPage(q *gdata.Query, n int) bool {
	switch q.PaginationType() {
	case gdata.PaginationIndexed:
		return q.MaxResults() > 0 && uint(n) < q.MaxResults()
	case gdata.PaginationURIs:
		return q.NextURI() == ""
	case gdata.PaginationTokens:
		return q.NextPageToken() == ""
	}
	return true
}

func printFetchResult(cmd *cobra.Command, f *feed, result *fetchResult) {
	s := newStyles(cmd.OutOrStdout())

	cmd.Println(s.Title.Render(f.Name))
	if len(result.Items) == 0 {
		cmd.Println(s.Muted.Render("No entries found."))
	}
	for i, item := range result.Items {
		title := item.Title
		if title == "" {
			title = s.Muted.Render("(untitled)")
		}
		cmd.Printf("[%d] %s\n", i+1, title)
		cmd.Printf("    %s %s\n", s.Key.Render("id:"), item.ID)
		if item.Updated > 0 {
			cmd.Printf("    %s %s\n", s.Key.Render("updated:"), formatTime(item.Updated))
		}
	}

	cmd.Println()
	cmd.Printf("%d entries in %d page(s)\n", len(result.Items), result.Pages)
	if result.Cursor != "" {
		cmd.Printf("%s %s\n", s.Warning.Render("more results, continue with --cursor"), result.Cursor)
	}
}
