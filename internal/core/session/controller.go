package session

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// State is the controller's current phase.
type State int

// Controller states.
const (
	// Closed means no dialog is open. Every input except Open is ignored.
	Closed State = iota
	// Idle means the dialog is open with no active query.
	Idle
	// Debouncing means a timer is pending for the latest query.
	Debouncing
	// Searching means a request has been issued and its results are awaited.
	Searching
	// Presenting means results for the latest request are shown.
	Presenting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Searching:
		return "searching"
	case Presenting:
		return "presenting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Key is a navigation key understood by the controller.
type Key int

// Navigation keys.
const (
	ArrowDown Key = iota
	ArrowUp
	Enter
	Escape
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Debounce asks the adapter to call TimerElapsed(Token) after Delay.
type Debounce struct {
	Token uint64
	Delay time.Duration
}

// Request asks the adapter to search for Query and report back with Seq.
type Request struct {
	Seq   uint64
	Query string
}

// Output is what the adapter must do after a controller call.
// The zero value means nothing to do.
type Output struct {
	Debounce *Debounce
	Request  *Request
	Target   *domain.NavigationTarget
	Focus    bool
	Closed   bool
}

// Controller is the query session state machine.
type Controller struct {
	debounce time.Duration

	state   State
	query   string
	results []domain.MatchResult
	cursor  int

	token uint64 // latest debounce token
	seq   uint64 // latest issued or burned request sequence
}

// NewController creates a closed controller. A non-positive debounce uses
// DefaultDebounce.
func NewController(debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{debounce: debounce}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Query returns the latest input.
func (c *Controller) Query() string { return c.query }

// Results returns the presented results.
func (c *Controller) Results() []domain.MatchResult { return c.results }

// Cursor returns the index of the highlighted result.
func (c *Controller) Cursor() int { return c.cursor }

// IsOpen reports whether the session is open.
func (c *Controller) IsOpen() bool { return c.state != Closed }

// Selected returns the highlighted result, if any.
func (c *Controller) Selected() (domain.MatchResult, bool) {
	if len(c.results) == 0 {
		return domain.MatchResult{}, false
	}
	return c.results[c.cursor], true
}

// Open starts a fresh session and asks the adapter to focus the input.
func (c *Controller) Open() Output {
	c.reset()
	c.state = Idle
	return Output{Focus: true}
}

// Input records a new query. Queries long enough to search start a debounce;
// shorter ones clear the results and drop any in-flight request.
func (c *Controller) Input(query string) Output {
	if c.state == Closed {
		return Output{}
	}
	c.query = query
	c.token++ // cancels any pending debounce

	if utf8.RuneCountInString(strings.TrimSpace(query)) < domain.MinQueryLength {
		c.state = Idle
		c.results = nil
		c.cursor = 0
		c.seq++ // burn: late results must not appear
		return Output{}
	}

	c.state = Debouncing
	return Output{Debounce: &Debounce{Token: c.token, Delay: c.debounce}}
}

// TimerElapsed issues a request when token belongs to the latest debounce.
func (c *Controller) TimerElapsed(token uint64) Output {
	if c.state != Debouncing || token != c.token {
		return Output{}
	}
	c.seq++
	c.state = Searching
	return Output{Request: &Request{Seq: c.seq, Query: c.query}}
}

// ResultsArrived presents results for seq and reports whether they were
// accepted. Results for anything but the latest request are discarded.
func (c *Controller) ResultsArrived(seq uint64, results []domain.MatchResult) bool {
	if c.state == Closed || c.state == Idle || seq != c.seq {
		return false
	}
	c.results = results
	c.cursor = 0
	if c.state == Searching {
		c.state = Presenting
	}
	return true
}

// Key handles a navigation key.
func (c *Controller) Key(k Key) Output {
	if c.state == Closed {
		return Output{}
	}

	switch k {
	case ArrowDown:
		if n := len(c.results); n > 0 {
			c.cursor = (c.cursor + 1) % n
		}
	case ArrowUp:
		if n := len(c.results); n > 0 {
			c.cursor = (c.cursor - 1 + n) % n
		}
	case Enter:
		r, ok := c.Selected()
		if !ok {
			return Output{}
		}
		target := domain.NewNavigationTarget(r)
		c.close()
		return Output{Target: &target, Closed: true}
	case Escape:
		c.close()
		return Output{Closed: true}
	}
	return Output{}
}

// Close ends the session. Late timers and results are ignored afterwards.
func (c *Controller) Close() Output {
	if c.state == Closed {
		return Output{}
	}
	c.close()
	return Output{Closed: true}
}

func (c *Controller) close() {
	c.reset()
	c.state = Closed
}

// reset clears transient state. Token and seq only grow, so anything
// issued before the reset can never match again.
func (c *Controller) reset() {
	c.query = ""
	c.results = nil
	c.cursor = 0
	c.token++
	c.seq++
}
