package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

var (
	searchJSON  bool
	searchPlain bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search topic titles and content",
	Long: `Searches every topic title and content block for the query.

Matching is case-insensitive substring matching. A title match is reported
before any content match of the same topic, and at most 15 topics are
returned in corpus order. Queries need at least 2 characters.

Multiple arguments are joined with spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchPlain, "plain", false, "disable colour even on a terminal")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON adds the navigation path to a match.
type searchResultJSON struct {
	domain.MatchResult
	Path string `json:"path"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < domain.MinQueryLength {
		return fmt.Errorf("%w: type at least %d characters", domain.ErrQueryTooShort, domain.MinQueryLength)
	}

	results := searchService.Search(cmd.Context(), query)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	color := !searchPlain && isTerminal(cmd.OutOrStdout())
	return outputSearchTable(cmd, query, results, color)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.MatchResult) error {
	out := make([]searchResultJSON, len(results))
	for i := range results {
		out[i] = searchResultJSON{
			MatchResult: results[i],
			Path:        domain.NewNavigationTarget(results[i]).Path(),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// outputSearchTable prints results, styled when color is set.
func outputSearchTable(cmd *cobra.Command, query string, results []domain.MatchResult, color bool) error {
	if len(results) == 0 {
		cmd.Printf("No matches for %q.\n", query)
		return nil
	}

	st := styles.DefaultStyles()
	paint := func(style lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return style.Render(text)
	}

	header := fmt.Sprintf("Results for %q (%d):", query, len(results))
	if len(results) == domain.MaxResults {
		header = fmt.Sprintf("Results for %q (first %d):", query, domain.MaxResults)
	}
	cmd.Println(paint(st.Title, header))
	cmd.Println()

	for i := range results {
		r := results[i]
		badge := string(r.MatchType)
		if color {
			badge = st.Badge(r.MatchType)
		}
		cmd.Printf("  [%d] %s  (%s, %s)\n", i+1, r.Title, r.MaterialSlug, badge)
		cmd.Printf("      %s\n", paint(st.Snippet, r.Snippet))
		cmd.Printf("      %s\n", paint(st.Muted, domain.NewNavigationTarget(r).Path()))
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
