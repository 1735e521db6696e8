package dictionary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a compiled whole-word, case-insensitive matcher for one term
// together with its replacement.
type Rule struct {
	American string
	British  string
	pattern  *regexp.Regexp
}

// Rules is an immutable, ordered list of compiled rules.
type Rules []Rule

// Compile builds one rule per term, in mapping order.
func Compile(mapping TermMapping) Rules {
	rules := make(Rules, 0, len(mapping))
	for _, t := range mapping {
		rules = append(rules, NewRule(t.American, t.British))
	}
	return rules
}

// NewRule compiles a single term. The term is matched literally.
func NewRule(american, british string) Rule {
	return Rule{
		American: american,
		British:  british,
		pattern:  regexp.MustCompile(`(?i)` + regexp.QuoteMeta(american)),
	}
}

// Apply replaces every whole-word occurrence of the American term in text
// with the British term, inserted verbatim.
//
// Word boundaries are Unicode aware: letters, numbers and the underscore
// are word characters, so "colour" is not matched inside "colourful" and
// "café" is matched before a space.
func (r Rule) Apply(text string) string {
	matches := r.find(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(r.British)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// Matches reports whether text contains a whole-word occurrence of the term.
func (r Rule) Matches(text string) bool {
	return len(r.find(text)) > 0
}

// find returns the byte ranges of non-overlapping whole-word matches,
// scanning left to right.
func (r Rule) find(text string) [][2]int {
	if r.pattern == nil {
		return nil
	}

	var out [][2]int
	pos := 0
	for pos <= len(text) {
		loc := r.pattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if start == end {
			break
		}

		if isBoundary(text, start) && isBoundary(text, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}

		// retry one rune further so overlapping candidates are still seen
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

// isBoundary reports whether a word boundary sits at byte offset i.
func isBoundary(text string, i int) bool {
	var before, after rune = -1, -1
	if i > 0 {
		before, _ = utf8.DecodeLastRuneInString(text[:i])
	}
	if i < len(text) {
		after, _ = utf8.DecodeRuneInString(text[i:])
	}
	return isWordRune(before) != isWordRune(after)
}

func isWordRune(r rune) bool {
	if r < 0 {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
