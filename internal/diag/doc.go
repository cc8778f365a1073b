// Package diag defines the diagnostic model shared by the scanner and the
// CLI layer.
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Diagnostic – severity + code + message + primary span (+ optional notes).
//   - Reporter / Bag – emission decoupled from storage; producers report,
//     the driver aggregates into a bounded Bag.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt. Scan errors are additionally carried as values in the
// lexer's result stream — the bag is the CLI-facing aggregation, never the
// only copy of an error.
package diag
