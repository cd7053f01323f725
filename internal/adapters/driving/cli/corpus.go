package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

var corpusJSON bool

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and control the topic corpus cache",
	Long: `The corpus is the cached snapshot of every topic that searches scan.

It is fetched on the first search and reused until its TTL expires or it is
invalidated. Topic writes through KawnHub invalidate it automatically.`,
}

var corpusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the corpus cache state",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStatus,
}

var corpusInvalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Mark the corpus stale so the next search reloads it",
	Args:  cobra.NoArgs,
	RunE:  runCorpusInvalidate,
}

var corpusRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the corpus from the topic store now",
	Args:  cobra.NoArgs,
	RunE:  runCorpusRefresh,
}

func init() {
	corpusStatusCmd.Flags().BoolVar(&corpusJSON, "json", false, "output as JSON")
	corpusCmd.AddCommand(corpusStatusCmd)
	corpusCmd.AddCommand(corpusInvalidateCmd)
	corpusCmd.AddCommand(corpusRefreshCmd)
	rootCmd.AddCommand(corpusCmd)
}

func requireCorpusService() error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	return nil
}

func runCorpusStatus(cmd *cobra.Command, _ []string) error {
	if err := requireCorpusService(); err != nil {
		return err
	}

	stats := corpusService.Stats()
	if corpusJSON {
		return printJSON(cmd, stats)
	}

	printCorpusStats(cmd, stats)

	if scheduler != nil {
		tasks := scheduler.Tasks()
		cmd.Println()
		if len(tasks) == 0 {
			cmd.Println("Warm refresh: disabled")
		}
		for _, task := range tasks {
			cmd.Printf("Warm refresh: every %s", task.Interval)
			if !task.LastRun.IsZero() {
				cmd.Printf(", last run %s", task.LastRun.Format(time.RFC3339))
			}
			if task.LastError != "" {
				cmd.Printf(", last error: %s", task.LastError)
			}
			cmd.Println()
		}
	}
	return nil
}

func printCorpusStats(cmd *cobra.Command, stats domain.CorpusStats) {
	cmd.Println("Corpus")
	cmd.Println("======")
	if stats.FetchedAt.IsZero() {
		cmd.Println("  Loaded:      no (loads on first search)")
	} else {
		cmd.Printf("  Loaded:      %s\n", stats.FetchedAt.Format(time.RFC3339))
	}
	cmd.Printf("  Topics:      %d\n", stats.TopicCount)
	cmd.Printf("  Generation:  %d\n", stats.Generation)
	cmd.Printf("  TTL:         %s\n", stats.TTL)
	cmd.Printf("  Stale:       %s\n", yesNo(stats.Stale))
	cmd.Printf("  Invalidated: %s\n", yesNo(stats.Invalidated))
	if stats.LastError != "" {
		cmd.Printf("  Last error:  %s\n", stats.LastError)
	}
}

func runCorpusInvalidate(cmd *cobra.Command, _ []string) error {
	if err := requireCorpusService(); err != nil {
		return err
	}

	corpusService.Invalidate()
	cmd.Println("Corpus invalidated; the next search reloads topics.")
	return nil
}

func runCorpusRefresh(cmd *cobra.Command, _ []string) error {
	if err := requireCorpusService(); err != nil {
		return err
	}

	if err := corpusService.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	stats := corpusService.Stats()
	cmd.Printf("Corpus refreshed: %d topics (generation %d).\n", stats.TopicCount, stats.Generation)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
