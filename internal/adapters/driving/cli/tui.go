package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/messages"
)

// errNotInteractive is returned when the TUI is started without a terminal.
var errNotInteractive = errors.New("kawnhub tui needs an interactive terminal; use 'kawnhub search' instead")

var tuiSearch bool

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for KawnHub.

The search dialog queries as you type, after a short pause. Choosing a
result opens the topic and scrolls to the matching block.

Controls:
  /        - Open search
  ↑, ↓     - Navigate results (wraps around)
  Enter    - Open the selected topic
  n, p     - Next / previous block in a topic
  r        - Reload topics (browse)
  Esc      - Back / Close search
  ?        - Toggle help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiSearch, "search", "s", false, "open the search dialog directly")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports := tui.NewPorts(searchService, topicService, corpusService)
	ports.Debounce = appSettings.Search.Debounce

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if !stdinIsTerminal() {
		return errNotInteractive
	}

	// TUI is long-running, so it keeps the corpus warm and watches for edits.
	stop := startBackground(cmd.Context())
	defer stop()

	app.WithContext(cmd.Context())
	if tuiSearch {
		app.WithInitialView(messages.ViewSearch)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
