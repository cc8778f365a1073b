package token

// Kind represents how a token was recognized.
type Kind uint8

const (
	// Invalid marks a malformed input region.
	Invalid Kind = iota
	// EOF marks the end of the input text.
	EOF
	// Keyword is a verbatim match of a configured keyword string.
	Keyword
	// Word is a run of alphanumeric/underscore characters.
	Word
	// Number is a Word consisting purely of ASCII digits.
	Number
	// String is a double-quoted literal, quotes included.
	String
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Keyword:
		return "Keyword"
	case Word:
		return "Word"
	case Number:
		return "Number"
	case String:
		return "String"
	}
	return "Unknown"
}
