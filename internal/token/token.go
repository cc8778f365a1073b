package token

import (
	"keylex/internal/source"
)

// Token represents a single recognized substring with its location.
// Text is exactly the input slice covered by Span.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token carries caller-visible text
// (anything but EOF and Invalid).
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Keyword, Word, Number, String:
		return true
	default:
		return false
	}
}

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsInvalid reports whether the token marks a malformed region.
// For invalid tokens Span.Start is the error byte offset.
func (t Token) IsInvalid() bool { return t.Kind == Invalid }
