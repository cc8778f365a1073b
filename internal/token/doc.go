// Package token defines the flat token model produced by the lexer.
//
// Tokens carry no grammar-level classification: Kind records only how a
// substring was recognized (configured keyword, word/number run, quoted
// literal), plus the Invalid and EOF sentinels. Anything richer belongs to
// the caller.
package token
