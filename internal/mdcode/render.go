package mdcode

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnbalancedEnd = errors.New("block end without matching start")
	ErrNestedStart   = errors.New("block start inside an open block")
	ErrUnclosedBlock = errors.New("block left open at end of stream")
	ErrEmptyText     = errors.New("text event without source bytes")
)

// RenderError reports a malformed event sequence.
type RenderError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("event %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Render serializes an event stream back into Markdown by writing the raw
// bytes of every event in order. Events dropped from the stream simply vanish
// from the output. Render validates block nesting as it goes and stops at the
// first violation; bytes already written are not taken back.
func Render(w io.Writer, events []Event) error {
	open := false

	for i, ev := range events {
		switch ev.Kind {
		case KindBlockStart:
			if open {
				return &RenderError{Index: i, Kind: ev.Kind, Err: ErrNestedStart}
			}

			open = true
		case KindBlockEnd:
			if !open {
				return &RenderError{Index: i, Kind: ev.Kind, Err: ErrUnbalancedEnd}
			}

			open = false
		case KindText:
			if len(ev.Raw) == 0 {
				return &RenderError{Index: i, Kind: ev.Kind, Err: ErrEmptyText}
			}
		case KindOther:
		}

		if len(ev.Raw) == 0 {
			continue
		}

		if _, err := w.Write(ev.Raw); err != nil {
			return err
		}
	}

	if open {
		return &RenderError{Index: len(events), Kind: KindBlockEnd, Err: ErrUnclosedBlock}
	}

	return nil
}
