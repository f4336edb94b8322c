package shell

import "strings"

const metacharacters = " \t\n\"'`$&|;<>()[]{}*?~!\\"

// needsQuoting reports whether token must be single-quoted to be
// shell-copy-pastable: it contains a shell metacharacter, or it would be
// misread as a flag/comment/assignment by a shell (a leading "=" or "#"),
// per spec.md §4.2.
func needsQuoting(token string) bool {
	if token == "" {
		return true
	}
	if strings.HasPrefix(token, "=") || strings.HasPrefix(token, "#") {
		return true
	}
	return strings.ContainsAny(token, metacharacters)
}

// quote single-quotes token, escaping embedded single quotes as '\'' —
// close the quote, emit an escaped literal quote, reopen the quote.
func quote(token string) string {
	return "'" + strings.ReplaceAll(token, "'", `'\''`) + "'"
}

// Render renders command as a single shell-copy-pastable line, per
// spec.md §4.2.
func Render(command []string) string {
	parts := make([]string, len(command))
	for i, tok := range command {
		if needsQuoting(tok) {
			parts[i] = quote(tok)
		} else {
			parts[i] = tok
		}
	}
	return strings.Join(parts, " ")
}
