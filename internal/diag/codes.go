package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
type Code uint16

const (
	// UnknownCode - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo Code = 1000
	// LexUnknownChar reports a character matching none of the recognized
	// classes (UnrecognizedCharacter).
	LexUnknownChar Code = 1001
	// LexUnterminatedString reports an opening quote with no closing quote
	// before end of input (UnterminatedQuote).
	LexUnterminatedString Code = 1002
	// LexBadNumber reports a digit run followed by a disqualifying
	// character (InvalidNumericContinuation).
	LexBadNumber Code = 1003
	// LexIncompleteKeyword reports a consumed keyword prefix that never
	// reached a configured keyword.
	LexIncompleteKeyword Code = 1004

	// I/O
	IOLoadFileError Code = 4001
)

// ID returns the stable external identifier, e.g. "LEX1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	switch c {
	case LexInfo:
		return "LexInfo"
	case LexUnknownChar:
		return "LexUnknownChar"
	case LexUnterminatedString:
		return "LexUnterminatedString"
	case LexBadNumber:
		return "LexBadNumber"
	case LexIncompleteKeyword:
		return "LexIncompleteKeyword"
	case IOLoadFileError:
		return "IOLoadFileError"
	}
	return "UnknownCode"
}
