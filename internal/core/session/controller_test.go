package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

func results(n int) []domain.MatchResult {
	out := make([]domain.MatchResult, n)
	for i := range out {
		out[i] = domain.MatchResult{
			TopicID:      fmt.Sprintf("t%d", i),
			MaterialSlug: "networking",
			MatchType:    domain.MatchContent,
			BlockIndex:   i,
		}
	}
	return out
}

// presenting drives a controller to Presenting with n results.
func presenting(t *testing.T, n int) *Controller {
	t.Helper()
	c := NewController(0)
	c.Open()
	out := c.Input("routing")
	require.NotNil(t, out.Debounce)
	out = c.TimerElapsed(out.Debounce.Token)
	require.NotNil(t, out.Request)
	require.True(t, c.ResultsArrived(out.Request.Seq, results(n)))
	require.Equal(t, Presenting, c.State())
	return c
}

func TestNewController(t *testing.T) {
	c := NewController(0)
	assert.Equal(t, Closed, c.State())
	assert.False(t, c.IsOpen())
	assert.Equal(t, DefaultDebounce, c.debounce)

	assert.Equal(t, 150*time.Millisecond, NewController(150*time.Millisecond).debounce)
}

func TestController_Open(t *testing.T) {
	c := NewController(0)

	out := c.Open()

	assert.True(t, out.Focus)
	assert.Nil(t, out.Debounce)
	assert.Equal(t, Idle, c.State())
	assert.Empty(t, c.Query())
	assert.Empty(t, c.Results())
	assert.Equal(t, 0, c.Cursor())
}

func TestController_ClosedIgnoresInput(t *testing.T) {
	c := NewController(0)

	assert.Equal(t, Output{}, c.Input("routing"))
	assert.Equal(t, Output{}, c.TimerElapsed(1))
	assert.False(t, c.ResultsArrived(1, results(2)))
	assert.Equal(t, Output{}, c.Key(ArrowDown))
	assert.Equal(t, Output{}, c.Close())
	assert.Equal(t, Closed, c.State())
}

func TestController_InputStartsDebounce(t *testing.T) {
	c := NewController(300 * time.Millisecond)
	c.Open()

	out := c.Input("ro")

	require.NotNil(t, out.Debounce)
	assert.Equal(t, 300*time.Millisecond, out.Debounce.Delay)
	assert.Nil(t, out.Request)
	assert.Equal(t, Debouncing, c.State())
}

func TestController_ShortInputClears(t *testing.T) {
	c := presenting(t, 3)

	out := c.Input(" r ")

	assert.Equal(t, Output{}, out)
	assert.Equal(t, Idle, c.State())
	assert.Empty(t, c.Results())
}

// TestController_DebounceCoalesces tests that N keystrokes within the window yield one request
func TestController_DebounceCoalesces(t *testing.T) {
	c := NewController(0)
	c.Open()

	var tokens []uint64
	for _, q := range []string{"ro", "rou", "rout", "routi", "routing"} {
		out := c.Input(q)
		require.NotNil(t, out.Debounce)
		tokens = append(tokens, out.Debounce.Token)
	}

	var requests []Request
	for _, tok := range tokens {
		if out := c.TimerElapsed(tok); out.Request != nil {
			requests = append(requests, *out.Request)
		}
	}

	require.Len(t, requests, 1)
	assert.Equal(t, "routing", requests[0].Query)
	assert.Equal(t, Searching, c.State())

	// The same timer firing twice issues nothing new
	assert.Nil(t, c.TimerElapsed(tokens[len(tokens)-1]).Request)
}

func TestController_SequenceIncreases(t *testing.T) {
	c := NewController(0)
	c.Open()

	first := c.TimerElapsed(c.Input("vlan").Debounce.Token).Request
	second := c.TimerElapsed(c.Input("vlans").Debounce.Token).Request

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Greater(t, second.Seq, first.Seq)
}

// TestController_StalenessGuard tests out-of-order completion of two requests
func TestController_StalenessGuard(t *testing.T) {
	c := NewController(0)
	c.Open()

	reqA := c.TimerElapsed(c.Input("rip").Debounce.Token).Request
	reqB := c.TimerElapsed(c.Input("ripv2").Debounce.Token).Request
	require.NotNil(t, reqA)
	require.NotNil(t, reqB)

	resultsB := results(1)
	resultsA := results(4)

	assert.True(t, c.ResultsArrived(reqB.Seq, resultsB))
	assert.False(t, c.ResultsArrived(reqA.Seq, resultsA), "older response arrives last and is dropped")

	assert.Equal(t, resultsB, c.Results())
	assert.Equal(t, Presenting, c.State())
}

func TestController_ShortInputDropsInFlight(t *testing.T) {
	c := NewController(0)
	c.Open()

	req := c.TimerElapsed(c.Input("ospf").Debounce.Token).Request
	require.NotNil(t, req)
	c.Input("o")

	assert.False(t, c.ResultsArrived(req.Seq, results(2)))
	assert.Empty(t, c.Results())
	assert.Equal(t, Idle, c.State())
}

func TestController_CloseDropsLateResults(t *testing.T) {
	c := NewController(0)
	c.Open()

	req := c.TimerElapsed(c.Input("ospf").Debounce.Token).Request
	require.NotNil(t, req)

	assert.Equal(t, Output{Closed: true}, c.Close())
	assert.False(t, c.ResultsArrived(req.Seq, results(2)))

	// Reopening does not resurrect the old request
	c.Open()
	assert.False(t, c.ResultsArrived(req.Seq, results(2)))
	assert.Equal(t, Idle, c.State())
}

func TestController_ReopenIgnoresOldTimer(t *testing.T) {
	c := NewController(0)
	c.Open()
	deb := c.Input("ospf").Debounce
	require.NotNil(t, deb)

	c.Close()
	c.Open()

	assert.Nil(t, c.TimerElapsed(deb.Token).Request)
	assert.Equal(t, Idle, c.State())
}

func TestController_ResultsResetCursor(t *testing.T) {
	c := presenting(t, 3)
	c.Key(ArrowDown)
	c.Key(ArrowDown)
	require.Equal(t, 2, c.Cursor())

	req := c.TimerElapsed(c.Input("routing table").Debounce.Token).Request
	require.NotNil(t, req)
	require.True(t, c.ResultsArrived(req.Seq, results(5)))

	assert.Equal(t, 0, c.Cursor())
}

// TestController_CircularCursor tests wrap-around in both directions
func TestController_CircularCursor(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		keys  []Key
		wants int
	}{
		{"down once", 3, []Key{ArrowDown}, 1},
		{"down wraps", 3, []Key{ArrowDown, ArrowDown, ArrowDown}, 0},
		{"up from first wraps to last", 3, []Key{ArrowUp}, 2},
		{"up then down", 3, []Key{ArrowUp, ArrowDown}, 0},
		{"single result", 1, []Key{ArrowDown, ArrowUp, ArrowDown}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := presenting(t, tt.n)
			for _, k := range tt.keys {
				c.Key(k)
			}
			assert.Equal(t, tt.wants, c.Cursor())
		})
	}
}

func TestController_DownNTimesReturnsToStart(t *testing.T) {
	for n := 1; n <= 15; n++ {
		c := presenting(t, n)
		for i := 0; i < n; i++ {
			c.Key(ArrowDown)
		}
		assert.Equal(t, 0, c.Cursor(), "n=%d", n)
	}
}

func TestController_KeysWithoutResults(t *testing.T) {
	c := presenting(t, 0)

	assert.Equal(t, Output{}, c.Key(ArrowDown))
	assert.Equal(t, Output{}, c.Key(ArrowUp))
	assert.Equal(t, 0, c.Cursor())

	out := c.Key(Enter)
	assert.Nil(t, out.Target)
	assert.False(t, out.Closed)
	assert.True(t, c.IsOpen())
}

func TestController_EnterNavigates(t *testing.T) {
	c := presenting(t, 3)
	c.Key(ArrowDown)

	out := c.Key(Enter)

	require.NotNil(t, out.Target)
	assert.True(t, out.Closed)
	assert.Equal(t, "t1", out.Target.TopicID)
	assert.Equal(t, "block-1", out.Target.Anchor())
	assert.Equal(t, "/materials/networking/t1#block-1", out.Target.Path())
	assert.Equal(t, Closed, c.State())
	assert.Empty(t, c.Results())
}

func TestController_EscapeCloses(t *testing.T) {
	c := presenting(t, 3)

	out := c.Key(Escape)

	assert.Equal(t, Output{Closed: true}, out)
	assert.False(t, c.IsOpen())
	assert.Empty(t, c.Query())
}

func TestController_Selected(t *testing.T) {
	c := presenting(t, 2)
	c.Key(ArrowUp)

	r, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "t1", r.TopicID)

	empty := NewController(0)
	_, ok = empty.Selected()
	assert.False(t, ok)
}

// TestController_Handle tests the full flow through synthetic events
func TestController_Handle(t *testing.T) {
	c := NewController(0)

	assert.True(t, c.Handle(Opened{}).Focus)

	out := c.Handle(Typed{Query: "static"})
	require.NotNil(t, out.Debounce)

	out = c.Handle(TimerFired{Token: out.Debounce.Token})
	require.NotNil(t, out.Request)
	assert.Equal(t, "static", out.Request.Query)

	c.Handle(ResultsReceived{Seq: out.Request.Seq, Results: results(2)})
	assert.Equal(t, Presenting, c.State())

	c.Handle(KeyPressed{Key: ArrowDown})
	assert.Equal(t, 1, c.Cursor())

	out = c.Handle(KeyPressed{Key: Enter})
	require.NotNil(t, out.Target)
	assert.Equal(t, "t1", out.Target.TopicID)

	c.Handle(Opened{})
	assert.Equal(t, Output{Closed: true}, c.Handle(ClosedEvent{}))
	assert.Equal(t, Output{}, c.Handle(nil))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "debouncing", Debouncing.String())
	assert.Equal(t, "searching", Searching.String())
	assert.Equal(t, "presenting", Presenting.String())
	assert.Equal(t, "state(9)", State(9).String())
}
