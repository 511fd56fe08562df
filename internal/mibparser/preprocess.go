package mibparser

import (
	"strings"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// commentMarker starts an ASN.1 comment line.
const commentMarker = "--"

// preprocess converts raw module text into a stream of logical lines:
// whitespace-trimmed, comment lines and blank lines dropped, and quoted
// values that span multiple source lines reassembled into one line with
// single spaces replacing the original line breaks.
//
// Returns types.ErrUnterminatedQuote if a quote opens but input ends before
// a closing line is found.
func preprocess(source string) ([]string, error) {
	raw := strings.Split(source, "\n")
	lines := make([]string, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		line := strings.TrimSpace(raw[i])
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		if quoteOpen(line) {
			// The quote does not close on this line: concatenate subsequent
			// source lines until one ends in a closing quote.
			fragments := []string{line}
			closed := false
			for i+1 < len(raw) {
				i++
				next := strings.TrimSpace(raw[i])
				fragments = append(fragments, next)
				if strings.HasSuffix(next, `"`) {
					closed = true
					break
				}
			}
			if !closed {
				return nil, types.ErrUnterminatedQuote
			}
			line = strings.Join(fragments, " ")
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// quoteOpen reports whether a line opens a quoted value without closing it,
// i.e. carries an odd number of quote characters.
func quoteOpen(line string) bool {
	return strings.Count(line, `"`)%2 == 1
}
