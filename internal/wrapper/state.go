package wrapper

import "github.com/ezerfernandes/scalawrap/internal/mdcode"

// Lang is the code block language tag subject to wrapper stripping.
const Lang = "scala"

// State is the position of the stripping state machine within a chapter.
type State int

const (
	Outside State = iota
	FirstLine
	InsideWrapped
	InsideUnwrapped
)

func (s State) String() string {
	switch s {
	case FirstLine:
		return "first-line"
	case InsideWrapped:
		return "inside-wrapped"
	case InsideUnwrapped:
		return "inside-unwrapped"
	default:
		return "outside"
	}
}

// Step is the transition function. It returns the next state and whether ev
// belongs in the output. Only text events are ever dropped: the opener line
// of a wrapped block and the closing brace lines that follow it.
func Step(p Patterns, s State, ev mdcode.Event) (State, bool) {
	switch ev.Kind {
	case mdcode.KindBlockStart:
		if ev.IsCodeStart(Lang) {
			return FirstLine, true
		}

		return s, true
	case mdcode.KindBlockEnd:
		return Outside, true
	case mdcode.KindText:
		switch s {
		case FirstLine:
			if p.Start(ev.Text) {
				return InsideWrapped, false
			}

			return InsideUnwrapped, true
		case InsideWrapped:
			return s, !p.End(ev.Text)
		case Outside, InsideUnwrapped:
			return s, true
		}
	case mdcode.KindOther:
	}

	return s, true
}

// Stats counts what a [Machine] saw and removed. Wrapped lists the blocks
// whose wrapper was stripped, in document order.
type Stats struct {
	Blocks     int
	Stripped   int
	Suppressed int
	Wrapped    []*mdcode.Block
}

// Machine runs [Step] over a stream, one event at a time.
type Machine struct {
	patterns Patterns
	state    State
	stats    Stats
	current  *mdcode.Block
}

// NewMachine returns a machine in the Outside state.
func NewMachine(p Patterns) *Machine {
	return &Machine{patterns: p}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Stats returns the counters accumulated so far.
func (m *Machine) Stats() Stats {
	return m.stats
}

// Feed advances the machine by one event and reports whether ev is emitted.
func (m *Machine) Feed(ev mdcode.Event) bool {
	prev := m.state

	next, emit := Step(m.patterns, prev, ev)
	m.state = next

	if next == FirstLine {
		m.stats.Blocks++
		m.current = ev.Block
	}

	if prev == FirstLine && next == InsideWrapped {
		m.stats.Stripped++
		m.stats.Wrapped = append(m.stats.Wrapped, m.current)
	}

	if !emit {
		m.stats.Suppressed++
	}

	return emit
}
