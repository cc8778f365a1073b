package lexer

import (
	"keylex/internal/diag"
	"keylex/internal/source"
	"keylex/internal/token"
)

// Кавычки входят в токен; содержимое между ними берётся дословно, включая
// пробелы и вхождения ключевых слов. Escape-последовательностей нет: токен
// закрывает первая же '"'.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}
	// EOF без закрывающей кавычки: ошибка на открывающей, скан завершается —
	// точки возобновления нет, остаток текста уже съеден.
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, source.Point(lx.file.ID, sp.Start), "unterminated string literal")
	lx.last = &ScanError{Code: diag.LexUnterminatedString, Offset: sp.Start}
	lx.halted = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
