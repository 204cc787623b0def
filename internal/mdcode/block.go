package mdcode

// Block describes one code block of a Markdown document. Indented blocks have
// no language and no line range. MetaErr is set when the attributes after the
// language tag could not be parsed; Meta is nil then.
type Block struct {
	Lang      string
	Meta      Meta
	MetaErr   error
	StartLine int
	EndLine   int
}
