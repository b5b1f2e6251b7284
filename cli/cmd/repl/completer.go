package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commands are the control commands, entered with a leading colon.
//
//nolint:gochecknoglobals
var commands = []string{"clear", "help", "let", "names", "quit"}

// isWordBoundary reports whether r delimits completion words: whitespace,
// member access, and expression operators or punctuation.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '.',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!', '&', '|',
		',', '?', ':', ';', '"', '\'', '`':
		return true
	}

	return false
}

// wordBounds returns the word around byte offset cursor and its byte
// boundaries within input. The word is empty when the cursor sits between
// two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// complete returns the fuzzy matches for the word at cursor. Words directly
// after a leading colon complete against the control commands; everything
// else completes against names. A lone exact match yields nothing.
func complete(input string, cursor int, names []string) (fuzzy.Matches, int, int) {
	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	pool := names
	if start == 1 && strings.HasPrefix(input, ":") {
		pool = commands
	}

	matches := fuzzy.Find(word, pool)
	if len(matches) == 1 && matches[0].Str == word {
		return nil, start, end
	}

	return matches, start, end
}

// renderCandidateBar renders matches on one line no wider than width,
// eliding whatever does not fit.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one match with its matched runes emphasized.
func renderCandidate(match fuzzy.Match, selected bool) string {
	if selected {
		return selectedStyle.Render(match.Str)
	}

	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(suggestionStyle.Render(string(r)))
		}
	}

	return b.String()
}
