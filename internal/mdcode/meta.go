package mdcode

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Meta holds the attributes declared after the language tag of a fenced code
// block, e.g. "scala,editable title=Main.scala".
type Meta map[string]interface{}

// Get returns the metadata value for the given key as a string.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	if m == nil {
		return ""
	}

	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

var (
	reJSON     = regexp.MustCompile(`^\s*{\s*["}]`)
	reBrackets = regexp.MustCompile(`^\s*{(.*)}$`)
)

// parseMeta understands a JSON object, a brace-wrapped attribute list and a
// bare list of words separated by commas or blanks. Words without "=" are
// flags and map to true.
func parseMeta(input []byte) (Meta, error) {
	if len(input) == 0 {
		return Meta{}, nil
	}

	if reJSON.Match(input) {
		var meta Meta

		if err := json.Unmarshal(input, &meta); err != nil {
			return nil, fmt.Errorf("code block attributes: %w", err)
		}

		return meta, nil
	}

	if subs := reBrackets.FindSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(strings.ReplaceAll(string(input), ",", " "))
	if err != nil {
		return nil, fmt.Errorf("code block attributes: %w", err)
	}

	dict := make(Meta)

	for _, word := range words {
		key, value, found := strings.Cut(word, "=")
		if len(key) == 0 {
			continue
		}

		if found {
			dict[key] = value
		} else {
			dict[key] = true
		}
	}

	return dict, nil
}
