package mdcode

// Kind identifies the structural role of an [Event].
type Kind int

const (
	KindOther Kind = iota
	KindBlockStart
	KindBlockEnd
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBlockStart:
		return "block-start"
	case KindBlockEnd:
		return "block-end"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Event is one unit of the stream produced by [Parse] and consumed by [Render].
//
// Raw holds the exact source bytes owned by the event, so rendering the
// unfiltered stream reproduces the document byte for byte. Block start and end
// markers are zero-width. For text events Text is the run a matcher should
// look at: the code line without container prefixes such as "> ".
type Event struct {
	Kind  Kind
	Block *Block
	Text  []byte
	Raw   []byte
}

// Other returns a passthrough event owning raw.
func Other(raw []byte) Event {
	return Event{Kind: KindOther, Raw: raw}
}

// Text returns a text event whose run and raw bytes are the same.
func Text(run []byte) Event {
	return Event{Kind: KindText, Text: run, Raw: run}
}

// Start returns a zero-width block start marker.
func Start(block *Block) Event {
	return Event{Kind: KindBlockStart, Block: block}
}

// End returns a zero-width block end marker.
func End(block *Block) Event {
	return Event{Kind: KindBlockEnd, Block: block}
}

// IsCodeStart reports whether ev opens a code block tagged lang.
func (ev Event) IsCodeStart(lang string) bool {
	return ev.Kind == KindBlockStart && ev.Block != nil && ev.Block.Lang == lang
}
