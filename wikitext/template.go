package wikitext

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotTemplate is returned by ParseInvocation when the input is not
// wrapped in outer {{ }} braces.
var ErrNotTemplate = errors.New("not a template invocation")

// namedKeyPattern restricts which left-hand sides of a top-level '='
// are accepted as parameter names. Anything else keeps the whole
// parameter unnamed, which protects values like URLs with query strings
// from being mis-split.
var namedKeyPattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

var nameWhitespace = regexp.MustCompile(`\s+`)

// Invocation is one parsed {{Name|param|key=value|...}} span.
type Invocation struct {
	// Name is the template name as written, surrounding whitespace trimmed.
	Name string

	// RawParams holds every parameter after the name, trimmed, in order.
	RawParams []string

	// Named maps lowercased parameter names to values. Keys are unique;
	// on repetition the last write wins.
	Named map[string]string

	// Unnamed holds the positional parameters in appearance order.
	Unnamed []string
}

// NormalizedName returns the template name lowercased with internal
// whitespace runs collapsed to single spaces. This is the form all
// template dispatch in this package keys on.
func (inv Invocation) NormalizedName() string {
	return normalizeTemplateName(inv.Name)
}

func normalizeTemplateName(name string) string {
	return strings.ToLower(strings.TrimSpace(nameWhitespace.ReplaceAllString(name, " ")))
}

// ParseInvocation parses a complete {{...}} span (surrounding whitespace
// tolerated) into an Invocation.
//
// It returns ErrNotTemplate when the outer braces are missing, and wraps
// the scanner's FormatError when the inside is unbalanced. Callers walk
// arbitrary text opportunistically, so both conditions are ordinary
// failure results rather than conditions to panic over.
func ParseInvocation(span string) (Invocation, error) {
	s := strings.TrimSpace(span)
	if len(s) < 4 || !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return Invocation{}, ErrNotTemplate
	}

	inner := s[2 : len(s)-2]
	parts, err := SplitTopLevel(inner, '|')
	if err != nil {
		return Invocation{}, fmt.Errorf("unparseable template invocation: %w", err)
	}

	inv := Invocation{
		Name:  strings.TrimSpace(parts[0]),
		Named: make(map[string]string),
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		inv.RawParams = append(inv.RawParams, part)

		eq := IndexOfTopLevelEquals(part)
		if eq > 0 && namedKeyPattern.MatchString(strings.TrimSpace(part[:eq])) {
			key := strings.ToLower(strings.TrimSpace(part[:eq]))
			inv.Named[key] = strings.TrimSpace(part[eq+1:])
			continue
		}
		inv.Unnamed = append(inv.Unnamed, part)
	}

	return inv, nil
}

// Param is one key/value pair of an infobox template body, in source order.
type Param struct {
	Key   string
	Value string
}

// ParseInfoboxParams locates the first template in input, verifies its
// name starts with nameHint (case-insensitive), and splits its body into
// ordered key/value params using the strict balanced scan.
//
// Segments without a top-level '=', or with an empty key, are silently
// dropped: unnamed or malformed parameters are rare in an infobox and not
// part of the targeted schema.
func ParseInfoboxParams(input, nameHint string) ([]Param, error) {
	open := strings.Index(input, "{{")
	if open < 0 {
		return nil, &FormatError{Pos: 0, Msg: "no template found"}
	}

	end, ok := matchTemplateSpan(input, open, strictScan)
	if !ok {
		return nil, &FormatError{Pos: open, Msg: "template never closes"}
	}

	inner := input[open+2 : end-2]
	segments, err := SplitTopLevel(inner, '|')
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(segments[0]))
	if !strings.HasPrefix(name, strings.ToLower(nameHint)) {
		return nil, &FormatError{Pos: open, Msg: fmt.Sprintf("template %q does not match %q", segments[0], nameHint)}
	}

	var params []Param
	for _, seg := range segments[1:] {
		eq := IndexOfTopLevelEquals(seg)
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(seg[:eq])
		if key == "" {
			continue
		}
		params = append(params, Param{Key: key, Value: strings.TrimSpace(seg[eq+1:])})
	}

	return params, nil
}
