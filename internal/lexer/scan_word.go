package lexer

import (
	"keylex/internal/token"
)

// scanWord съедает максимальный ран из букв/цифр/подчёркиваний. Ран
// обрывается раньше, если внутри него начинается полное ключевое слово —
// оно будет выдано следующей итерацией. Ран целиком из ASCII-цифр получает
// Kind Number (для правила числового продолжения в Next).
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	content := lx.file.Content
	allDigits := true

	for !lx.cursor.EOF() {
		if lx.cursor.Off > uint32(start) && lx.keys.MatchesAt(content, int(lx.cursor.Off)) {
			break
		}
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isWordByte(b) {
				break
			}
			if !isDec(b) {
				allDigits = false
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isWordRune(r) {
			break
		}
		// Unicode-цифры не участвуют в числовом правиле — оно закреплено
		// за ASCII-ранами вида "1-3".
		allDigits = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	kind := token.Word
	if allDigits {
		kind = token.Number
	}
	return token.Token{Kind: kind, Span: sp, Text: string(content[sp.Start:sp.End])}
}
