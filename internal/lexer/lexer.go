package lexer

import (
	"keylex/internal/diag"
	"keylex/internal/keyword"
	"keylex/internal/source"
	"keylex/internal/token"
)

// noAdjacentRun — сторожевое значение для numEnd: предыдущий токен не был
// числовым, либо между ним и курсором был пробел.
const noAdjacentRun = ^uint32(0)

// Lexer scans one input text against a configured keyword set. One forward
// cursor; a new Lexer is created per tokenize call.
type Lexer struct {
	file   *source.File
	cursor Cursor
	keys   *keyword.Set
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	numEnd uint32       // конец последнего чисто-цифрового рана, примыкание проверяется в Next
	halted bool         // после невосстановимой ошибки скан завершён
	last   *ScanError   // ошибка последнего Invalid токена
}

func New(file *source.File, keys *keyword.Set, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		keys:   keys,
		opts:   opts,
		numEnd: noAdjacentRun,
	}
}

// Next возвращает следующий значимый токен. После EOF (или невосстановимой
// ошибки) всегда возвращает EOF. Для Invalid токенов Span.Start — байтовое
// смещение ошибки; детали доступны через LastError.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	tok := lx.scan()
	// EOF не сбрасывает last: после завершающей ошибки вызывающий мог
	// дочитать поток до конца и только потом спросить детали
	if tok.Kind != token.Invalid && tok.Kind != token.EOF {
		lx.last = nil
	}

	// Числовое правило смотрит на примыкание к предыдущему digit-рану
	if tok.Kind == token.Number {
		lx.numEnd = tok.Span.End
	} else {
		lx.numEnd = noAdjacentRun
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// LastError returns the error carried by the most recent Invalid token, or
// nil once a later valid token is produced. EOF does not reset it.
func (lx *Lexer) LastError() *ScanError {
	return lx.last
}

func (lx *Lexer) scan() token.Token {
	if lx.halted {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Text: ""}
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Text: ""}
	}

	pos := lx.cursor.Off
	content := lx.file.Content
	adjacentNum := lx.numEnd == pos

	// Ключевое слово имеет приоритет над остальными классами
	end, stop, ok := lx.keys.Match(content, int(pos))
	if ok {
		lx.cursor.Off = uint32(end)
		sp := source.Span{File: lx.file.ID, Start: pos, End: uint32(end)}
		return token.Token{Kind: token.Keyword, Span: sp, Text: string(content[pos:end])}
	}

	// Цифровой ран, к которому вплотную примыкает не-пробел и не ключевое
	// слово — ошибка продолжения числа. Смещение: где остановился обход
	// трая (частичный префикс), иначе сам дисквалифицирующий символ.
	if adjacentNum {
		errOff := pos
		if uint32(stop) > pos {
			errOff = uint32(stop)
		}
		return lx.fail(diag.LexBadNumber, errOff, "invalid numeric continuation")
	}

	b := lx.cursor.Peek()
	switch {
	case b == '"':
		return lx.scanString()
	case b < utf8RuneSelf && isWordByte(b):
		return lx.scanWord()
	case b >= utf8RuneSelf:
		if r, _ := lx.peekRune(); isWordRune(r) {
			return lx.scanWord()
		}
	}

	// Съеденный префикс ключевого слова, не дошедший до терминала.
	// Проверяется после кавычки и словесного рана: префикс, начинающийся
	// с их символов, не лишает текст обычного токена ("kelp" при ключе
	// "key" — слово, а не ошибка).
	if uint32(stop) > pos {
		return lx.fail(diag.LexIncompleteKeyword, uint32(stop), "incomplete keyword")
	}

	// Нераспознанный символ: репорт и продолжаем со следующей руны
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unrecognized character")
	lx.last = &ScanError{Code: diag.LexUnknownChar, Offset: sp.Start}
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(content[sp.Start:sp.End])}
}

// fail формирует точечный Invalid токен и завершает скан: у этих ошибок
// нет определённой точки возобновления.
func (lx *Lexer) fail(code diag.Code, off uint32, msg string) token.Token {
	sp := source.Point(lx.file.ID, off)
	lx.errLex(code, sp, msg)
	lx.last = &ScanError{Code: code, Offset: off}
	lx.halted = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isSpaceByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isSpaceRune(r) {
			return
		}
		lx.bumpRune()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
