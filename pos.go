package foobar

import "fmt"

// Location is a 1-indexed line/column pair, matching the positions the
// lexer stamps on every token.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span covers the range between two locations, inclusive of Start and
// exclusive of End. Single-point spans (the common case for lexer/parser
// diagnostics, which only ever know a token's starting position) render
// as a single location.
type Span struct {
	Start Location
	End   Location
}

func (s Span) String() string {
	if s.End == (Location{}) || s.Start == s.End {
		return s.Start.String()
	}
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// spanAt builds a single-point Span from a location, used for every
// diagnostic that only has a token's start position available.
func spanAt(l Location) Span {
	return Span{Start: l, End: l}
}
