package wrapper

import "github.com/ezerfernandes/scalawrap/internal/mdcode"

// Transform filters events through a fresh [Machine] and returns the events
// to keep. The input slice is not modified.
//
// The first text event inside a scala block is treated as the block's first
// line whatever its extent; when a parser hands over several lines at once the
// start pattern sees all of them and the run is dropped as a whole.
func Transform(events []mdcode.Event, p Patterns) ([]mdcode.Event, Stats) {
	m := NewMachine(p)
	out := make([]mdcode.Event, 0, len(events))

	for _, ev := range events {
		if m.Feed(ev) {
			out = append(out, ev)
		}
	}

	return out, m.Stats()
}
