package wikitext

import (
	"fmt"
	"strings"
)

// FormatError reports a structural problem found while scanning wikitext,
// e.g. an unmatched "{{" or an unterminated <ref> element.
type FormatError struct {
	// Pos is the byte offset in the scanned string where the problem was detected.
	//
	// IMPORTANT: Pos is a byte position, not a character (rune) index.
	// This matters for strings with non-ASCII characters: UI code that
	// highlights by "characters" must convert the byte index first.
	Pos int

	// Msg describes the problem.
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wikitext format error at byte %d: %s", e.Pos, e.Msg)
}

// scanState tracks nesting while walking wikitext left to right.
//
// The state is "top level" exactly when all counters are zero and all
// booleans are false. Counters never go negative: what happens on an
// attempt to close an already-zero counter is decided by the scanPolicy
// of the call site.
type scanState struct {
	template int // {{ }} depth
	wikiLink int // [[ ]] depth
	external int // [ ] depth

	inComment bool // inside <!-- -->
	inRef     bool // inside <ref>...</ref>
	inTag     bool // inside a generic tag header <...>
}

func (s scanState) topLevel() bool {
	return s.template == 0 && s.wikiLink == 0 && s.external == 0 &&
		!s.inComment && !s.inRef && !s.inTag
}

// scanPolicy decides how the shared scan routine reacts to structural
// problems. The strict policy is used when splitting for key/value
// assembly; the tolerant one during best-effort fallback extraction.
type scanPolicy struct {
	// strictUnderflow makes closing an already-zero counter a FormatError
	// instead of a clamped no-op.
	strictUnderflow bool

	// strictEOF makes an open template/comment/ref/tag-header state at
	// end-of-input a FormatError instead of silently consumed input.
	strictEOF bool
}

var (
	strictScan   = scanPolicy{strictUnderflow: true, strictEOF: true}
	tolerantScan = scanPolicy{}
)

// scanHooks are the two observation points of the shared state machine.
// Both are optional.
type scanHooks struct {
	// sep is called at every ordinary top-level byte. Returning true
	// records the position as a cut point.
	sep func(i int) bool

	// templateClosed is called after a "}}" has been consumed, with the
	// remaining template depth. Returning true stops the scan; the byte
	// index just past the "}}" becomes the stop position.
	templateClosed func(i int, depth int) bool
}

// scan is the single brace/bracket/comment/ref-aware pass every balanced
// operation in this package is built on. It walks input from start,
// maintaining a scanState, and reports separator cut points and template
// closes through hooks. stop is len(input) unless a hook ended the scan
// early.
func scan(input string, start int, pol scanPolicy, hooks scanHooks) (cuts []int, stop int, err error) {
	var st scanState
	n := len(input)
	i := start

	for i < n {
		if st.inComment {
			if strings.HasPrefix(input[i:], "-->") {
				st.inComment = false
				i += 3
			} else {
				i++
			}
			continue
		}

		if st.inRef {
			if hasFoldPrefix(input[i:], "</ref") {
				close := strings.IndexByte(input[i:], '>')
				if close < 0 {
					// the closing tag itself never terminates
					if pol.strictEOF {
						return nil, n, &FormatError{Pos: i, Msg: "unterminated </ref>"}
					}
					return cuts, n, nil
				}
				st.inRef = false
				i += close + 1
			} else {
				i++
			}
			continue
		}

		if st.inTag {
			if input[i] == '>' {
				st.inTag = false
			}
			i++
			continue
		}

		if strings.HasPrefix(input[i:], "<!--") {
			st.inComment = true
			i += 4
			continue
		}

		if isRefOpen(input[i:]) {
			close := strings.IndexByte(input[i:], '>')
			if close < 0 {
				// a ref open with no '>' anywhere is terminal: the rest
				// of the input is consumed as the unterminated element
				if pol.strictEOF {
					return nil, n, &FormatError{Pos: i, Msg: "unterminated <ref>"}
				}
				return cuts, n, nil
			}
			if input[i+close-1] == '/' {
				// self-closing <ref .../> contributes no nesting
				i += close + 1
				continue
			}
			st.inRef = true
			i += close + 1
			continue
		}

		if input[i] == '<' && i+1 < n && (isTagNameByte(input[i+1]) || input[i+1] == '/' || input[i+1] == '!') {
			st.inTag = true
			i++
			continue
		}

		if strings.HasPrefix(input[i:], "{{") {
			st.template++
			i += 2
			continue
		}

		if strings.HasPrefix(input[i:], "}}") {
			if st.template == 0 {
				if pol.strictUnderflow {
					return nil, i, &FormatError{Pos: i, Msg: "unexpected }}"}
				}
				// tolerant: counter stays clamped at zero
				i += 2
				continue
			}
			st.template--
			i += 2
			if hooks.templateClosed != nil && hooks.templateClosed(i, st.template) {
				return cuts, i, nil
			}
			continue
		}

		if strings.HasPrefix(input[i:], "[[") {
			st.wikiLink++
			i += 2
			continue
		}

		if strings.HasPrefix(input[i:], "]]") && st.wikiLink > 0 {
			st.wikiLink--
			i += 2
			continue
		}

		if input[i] == '[' {
			st.external++
			i++
			continue
		}

		if input[i] == ']' {
			if st.external == 0 {
				if pol.strictUnderflow {
					return nil, i, &FormatError{Pos: i, Msg: "unexpected ]"}
				}
				i++
				continue
			}
			st.external--
			i++
			continue
		}

		if hooks.sep != nil && st.topLevel() && hooks.sep(i) {
			cuts = append(cuts, i)
		}
		i++
	}

	if pol.strictEOF {
		switch {
		case st.template > 0:
			return nil, n, &FormatError{Pos: n, Msg: "unclosed {{"}
		case st.inComment:
			return nil, n, &FormatError{Pos: n, Msg: "unclosed comment"}
		case st.inRef:
			return nil, n, &FormatError{Pos: n, Msg: "unclosed <ref>"}
		case st.inTag:
			return nil, n, &FormatError{Pos: n, Msg: "unclosed tag header"}
		}
	}

	return cuts, n, nil
}

// isRefOpen reports whether s starts a <ref> element. The check is
// case-insensitive and requires a delimiter after "ref" so that tags
// like <references> are treated as generic tag headers instead.
func isRefOpen(s string) bool {
	if !hasFoldPrefix(s, "<ref") {
		return false
	}
	if len(s) == 4 {
		return true
	}
	switch s[4] {
	case ' ', '\t', '\n', '>', '/':
		return true
	}
	return false
}

func isTagNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// hasFoldPrefix is a case-insensitive strings.HasPrefix for ASCII prefixes.
func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// splitAt cuts input into the segments between the given cut positions.
// Each cut byte is a single-byte separator and is excluded from the
// segments. The final segment is always appended, even if empty, so the
// result has exactly len(cuts)+1 entries.
func splitAt(input string, cuts []int) []string {
	segments := make([]string, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		segments = append(segments, input[prev:c])
		prev = c + 1
	}
	return append(segments, input[prev:])
}

// SplitTopLevel splits input on every top-level occurrence of sep,
// requiring strict balance: a close with no matching open, or any
// open template/comment/ref/tag-header left at end-of-input, returns
// a *FormatError.
func SplitTopLevel(input string, sep byte) ([]string, error) {
	cuts, _, err := scan(input, 0, strictScan, scanHooks{
		sep: func(i int) bool { return input[i] == sep },
	})
	if err != nil {
		return nil, err
	}
	return splitAt(input, cuts), nil
}

// SplitTopLevelTolerant is the best-effort variant of SplitTopLevel used
// during fallback extraction: underflows are clamped and unbalanced
// end-of-input state is ignored.
func SplitTopLevelTolerant(input string, sep byte) []string {
	cuts, _, _ := scan(input, 0, tolerantScan, scanHooks{
		sep: func(i int) bool { return input[i] == sep },
	})
	return splitAt(input, cuts)
}

// IndexOfTopLevelEquals returns the byte index of the first top-level '='
// in input, or -1 when there is none.
func IndexOfTopLevelEquals(input string) int {
	found := -1
	scan(input, 0, tolerantScan, scanHooks{
		sep: func(i int) bool {
			if found < 0 && input[i] == '=' {
				found = i
			}
			return false
		},
	})
	return found
}

// FindClosingTemplate returns the index of the "}}" matching the "{{" at
// open, or -1. This is the lighter-weight pass used for fast template-span
// extraction: it tracks template nesting only and ignores every other
// marker type.
func FindClosingTemplate(input string, open int) int {
	if open < 0 || !strings.HasPrefix(input[open:], "{{") {
		return -1
	}
	depth := 0
	for i := open; i < len(input); {
		switch {
		case strings.HasPrefix(input[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(input[i:], "}}"):
			depth--
			if depth == 0 {
				return i
			}
			i += 2
		default:
			i++
		}
	}
	return -1
}

// MatchTemplateSpan runs the full comment/ref/tag-aware state machine from
// the "{{" at open and returns the index just past its matching "}}".
// ok is false when input[open:] does not start a template or the template
// never closes.
func MatchTemplateSpan(input string, open int) (end int, ok bool) {
	return matchTemplateSpan(input, open, tolerantScan)
}

func matchTemplateSpan(input string, open int, pol scanPolicy) (end int, ok bool) {
	if open < 0 || !strings.HasPrefix(input[open:], "{{") {
		return 0, false
	}
	closed := false
	_, stop, err := scan(input, open, pol, scanHooks{
		templateClosed: func(i, depth int) bool {
			if depth == 0 {
				closed = true
				return true
			}
			return false
		},
	})
	if err != nil || !closed {
		return 0, false
	}
	return stop, true
}
