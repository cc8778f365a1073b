package lexer

import (
	"keylex/internal/diag"
	"keylex/internal/source"
)

// Options configures a Lexer. Reporter может быть nil — тогда диагностики
// не собираются, но ошибки всё равно приходят значениями в потоке токенов.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
