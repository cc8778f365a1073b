package lexer

import (
	"fmt"

	"keylex/internal/diag"
	"keylex/internal/keyword"
	"keylex/internal/source"
	"keylex/internal/token"
)

// ScanError is a malformed-input condition carried as a value in the result
// stream. Offset is the byte offset into the input text where the malformed
// region begins.
type ScanError struct {
	Code   diag.Code
	Offset uint32
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.Code, e.Offset)
}

// Result is one entry of the token stream: a token, or a scan error.
type Result struct {
	Tok token.Token
	Err *ScanError
}

// Ok reports whether the entry carries a token rather than an error.
func (r Result) Ok() bool { return r.Err == nil }

// Text returns the token substring for Ok entries, "" otherwise.
func (r Result) Text() string {
	if r.Err != nil {
		return ""
	}
	return r.Tok.Text
}

// Tokenizer holds a configured keyword set. It is created once and reused:
// the set is read-only after construction, so concurrent Tokenize calls on
// independent texts are safe — every call owns an independent cursor.
type Tokenizer struct {
	keys *keyword.Set
}

// NewTokenizer builds a Tokenizer from the given keyword strings.
// Empty keywords are rejected; duplicates collapse silently.
func NewTokenizer(keywords []string) (*Tokenizer, error) {
	keys, err := keyword.New(keywords)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{keys: keys}, nil
}

// Keys exposes the underlying keyword set (for drivers that build their own
// Lexer around it).
func (t *Tokenizer) Keys() *keyword.Set {
	return t.keys
}

// Tokenize starts an independent scan of text from offset 0 and returns a
// lazy stream over it. The stream is a single forward cursor: once partially
// consumed it cannot be restarted — call Tokenize again instead.
func (t *Tokenizer) Tokenize(text string) *Stream {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	return &Stream{lx: New(fs.Get(id), t.keys, Options{})}
}

// Collect drains a fresh scan of text into a slice.
func (t *Tokenizer) Collect(text string) []Result {
	return t.Tokenize(text).Collect()
}

// Stream is a lazy, finite sequence of Results over one input text.
type Stream struct {
	lx   *Lexer
	done bool
}

// NewStream wraps an already-configured Lexer. Used by the driver so that
// diagnostics flow into its bag while results are collected.
func NewStream(lx *Lexer) *Stream {
	return &Stream{lx: lx}
}

// Next returns the next entry; ok is false once the input is exhausted.
// Partial consumption is always safe: there are no finalization obligations.
func (s *Stream) Next() (res Result, ok bool) {
	if s.done {
		return Result{}, false
	}
	tok := s.lx.Next()
	if tok.Kind == token.EOF {
		s.done = true
		return Result{}, false
	}
	if tok.Kind == token.Invalid {
		return Result{Tok: tok, Err: s.lx.LastError()}, true
	}
	return Result{Tok: tok}, true
}

// Collect drains the remainder of the stream.
func (s *Stream) Collect() []Result {
	var out []Result
	for {
		res, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, res)
	}
}
