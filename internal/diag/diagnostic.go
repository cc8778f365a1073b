package diag

import (
	"keylex/internal/source"
)

// Note is a secondary span/message adding context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by the scan.
// Primary.Start is the error byte offset.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
