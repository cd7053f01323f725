package session

import "github.com/BASILR00T/kawnhub-sub000/internal/core/domain"

// Event is an input to Controller.Handle.
type Event interface {
	isEvent()
}

// Opened opens the session.
type Opened struct{}

// Typed reports the current input text.
type Typed struct {
	Query string
}

// TimerFired reports an elapsed debounce timer.
type TimerFired struct {
	Token uint64
}

// ResultsReceived reports the response to a request.
type ResultsReceived struct {
	Seq     uint64
	Results []domain.MatchResult
}

// KeyPressed reports a navigation key.
type KeyPressed struct {
	Key Key
}

// ClosedEvent closes the session.
type ClosedEvent struct{}

func (Opened) isEvent()          {}
func (Typed) isEvent()           {}
func (TimerFired) isEvent()      {}
func (ResultsReceived) isEvent() {}
func (KeyPressed) isEvent()      {}
func (ClosedEvent) isEvent()     {}

// Handle dispatches an event to the matching method.
// ResultsReceived yields an empty Output; use ResultsArrived to learn
// whether the results were accepted.
func (c *Controller) Handle(e Event) Output {
	switch ev := e.(type) {
	case Opened:
		return c.Open()
	case Typed:
		return c.Input(ev.Query)
	case TimerFired:
		return c.TimerElapsed(ev.Token)
	case ResultsReceived:
		c.ResultsArrived(ev.Seq, ev.Results)
		return Output{}
	case KeyPressed:
		return c.Key(ev.Key)
	case ClosedEvent:
		return c.Close()
	default:
		return Output{}
	}
}
