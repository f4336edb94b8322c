package build

import (
	"sort"

	"maek/internal/core/domain"
)

// tokenize splits data on unescaped space/tab/newline/carriage-return,
// applying the dep-file escape rules of spec.md §4.7: a backslash before a
// newline is a line continuation (both bytes are discarded, producing no
// token separator of their own); a backslash before any other byte escapes
// it literally, including a backslash-escaped space inside a path; "$$"
// decodes to a literal "$".
func tokenize(data []byte) []string {
	var tokens []string
	var cur []byte
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = nil
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data) && data[i+1] == '\n':
			i += 2
		case c == '\\' && i+1 < len(data):
			cur = append(cur, data[i+1])
			i += 2
		case c == '\\':
			cur = append(cur, '\\')
			i++
		case c == '$' && i+1 < len(data) && data[i+1] == '$':
			cur = append(cur, '$')
			i += 2
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
			i++
		default:
			cur = append(cur, c)
			i++
		}
	}
	flush()
	return tokens
}

// parseDepFile tokenizes the make-style dependency file content emitted by
// the dependency-probe command and returns the discovered header paths,
// sorted lexically, per spec.md §4.7. The first two tokens must be the
// literal "x" and ":" (the probe command is configured with -MT 'x ' for
// exactly this reason); any other leading pair is a malformed dep-file.
func parseDepFile(path string, data []byte) ([]string, error) {
	tokens := tokenize(data)
	if len(tokens) < 2 || tokens[0] != "x" || tokens[1] != ":" {
		return nil, domain.MalformedDepFileError(path)
	}

	headers := append([]string(nil), tokens[2:]...)
	sort.Strings(headers)
	return headers, nil
}
