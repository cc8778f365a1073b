package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"keylex/internal/diag"
	"keylex/internal/keyword"
	"keylex/internal/lexer"
	"keylex/internal/source"
	"keylex/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки с заданными ключевыми словами
func makeTestLexer(t *testing.T, input string, keywords []string) (*lexer.Lexer, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.txt", []byte(input))
	file := fs.Get(fileID)

	keys, err := keyword.New(keywords)
	if err != nil {
		t.Fatalf("keyword.New(%v): %v", keywords, err)
	}

	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	lx := lexer.New(file, keys, lexer.Options{Reporter: reporter})

	return lx, reporter
}

// collectAllTokens собирает все токены до EOF (без EOF)
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// expectTexts проверяет тексты токенов; все должны быть валидными
func expectTexts(t *testing.T, input string, keywords []string, expected []string) {
	t.Helper()
	lx, reporter := makeTestLexer(t, input, keywords)
	tokens := collectAllTokens(lx)

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind == token.Invalid {
			t.Fatalf("Token %d is Invalid at offset %d\nInput: %q\nErrors: %v",
				i, tok.Span.Start, input, reporter.ErrorMessages())
		}
		if tok.Text != expected[i] {
			t.Errorf("Token %d: expected %q, got %q (%v)", i, expected[i], tok.Text, tok.Kind)
		}
	}
	if reporter.HasErrors() {
		t.Errorf("Unexpected errors: %v", reporter.ErrorMessages())
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var flowKeywords = []string{"->", "<-", "{", "}"}
var prologKeywords = []string{":-", "[", "]", "(", ")", ",", "."}

// ====== Токены: базовые классы ======

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Word},
		{"_bar", token.Word},
		{"x123", token.Word},
		{"camelCase", token.Word},
		{"a_b_c", token.Word},
		{"123", token.Number},
		{"0", token.Number},
		{"12a", token.Word}, // не чисто цифровой
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(t, tt.input, flowKeywords)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, tok.Kind)
			}
			if tok.Text != tt.input {
				t.Errorf("Expected text %q, got %q", tt.input, tok.Text)
			}
		})
	}
}

func TestWords_Unicode(t *testing.T) {
	tests := []string{
		"идентификатор",
		"λx",
		"函数",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, _ := makeTestLexer(t, input, flowKeywords)
			tok := lx.Next()
			if tok.Kind != token.Word {
				t.Errorf("Expected Word, got %v for %q", tok.Kind, input)
			}
			if tok.Text != input {
				t.Errorf("Expected text %q, got %q", input, tok.Text)
			}
		})
	}
}

func TestKeyword_Single(t *testing.T) {
	lx, _ := makeTestLexer(t, "->", flowKeywords)
	tok := lx.Next()
	if tok.Kind != token.Keyword || tok.Text != "->" {
		t.Errorf("Expected Keyword \"->\", got %v %q", tok.Kind, tok.Text)
	}
}

func TestKeyword_Alphanumeric(t *testing.T) {
	// Ключевое слово в начале позиции имеет приоритет над словесным раном
	expectTexts(t, "ifx", []string{"if"}, []string{"if", "x"})

	// и обрывает ран, начавшись внутри него
	expectTexts(t, "xxkeyyy", []string{"key"}, []string{"xx", "key", "yy"})
}

func TestKeyword_PrefixSharedWithWord(t *testing.T) {
	// Частичный префикс ключевого слова не лишает текст обычного слова:
	// обход трая по "ke" обрывается, и "kelp" сканируется словесным раном
	expectTexts(t, "kelp", []string{"key"}, []string{"kelp"})
	expectTexts(t, "ke kelp key keys", []string{"key"},
		[]string{"ke", "kelp", "key", "key", "s"})
}

func TestKeyword_QuotePrefixDoesNotBlockString(t *testing.T) {
	// Ключ, начинающийся с кавычки, не мешает строковому литералу
	lx, reporter := makeTestLexer(t, `"abc"`, []string{`"x`})
	tok := lx.Next()
	if tok.Kind != token.String || tok.Text != `"abc"` {
		t.Fatalf("Expected String %q, got %v %q", `"abc"`, tok.Kind, tok.Text)
	}
	if reporter.HasErrors() {
		t.Errorf("Unexpected errors: %v", reporter.ErrorMessages())
	}
}

func TestKeyword_LongestWins(t *testing.T) {
	kws := []string{"->", "-", "*"}
	expectTexts(t, "->", kws, []string{"->"})
	expectTexts(t, "-x", kws, []string{"-", "x"})
	expectTexts(t, "a->b", kws, []string{"a", "->", "b"})
}

func TestString_Simple(t *testing.T) {
	tests := []struct {
		input string
	}{
		{`""`},
		{`"hello"`},
		{`"hello world"`},
		{`"123"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(t, tt.input, flowKeywords)
			tok := lx.Next()
			if tok.Kind != token.String {
				t.Errorf("Expected String, got %v", tok.Kind)
			}
			if tok.Text != tt.input {
				t.Errorf("Expected text %q, got %q", tt.input, tok.Text)
			}
		})
	}
}

func TestString_KeywordsInsideNotSplit(t *testing.T) {
	// Содержимое кавычек не разбивается, даже если похоже на ключевые слова
	expectTexts(t, `{abc -> "123 <- 456"}`, flowKeywords,
		[]string{"{", "abc", "->", `"123 <- 456"`, "}"})
}

func TestString_Unterminated(t *testing.T) {
	lx, reporter := makeTestLexer(t, `xy "hello`, flowKeywords)

	tok := lx.Next()
	if tok.Kind != token.Word || tok.Text != "xy" {
		t.Fatalf("Expected Word \"xy\", got %v %q", tok.Kind, tok.Text)
	}

	tok = lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("Expected Invalid for unterminated string, got %v", tok.Kind)
	}
	// Ошибка позиционируется на открывающей кавычке
	if tok.Span.Start != 3 {
		t.Errorf("Error offset = %d, want 3", tok.Span.Start)
	}
	if got := lx.LastError(); got == nil || got.Code != diag.LexUnterminatedString || got.Offset != 3 {
		t.Errorf("LastError = %v", got)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unterminated string")
	}

	// Остаток текста съеден, скан завершён
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("Expected EOF after unterminated string, got %v", next.Kind)
	}
}

// ====== Сценарии из README ======

func TestScenario_FlowWithString(t *testing.T) {
	expectTexts(t, `{abc -> "123 <- 456"}`, flowKeywords,
		[]string{"{", "abc", "->", `"123 <- 456"`, "}"})
}

func TestScenario_NumericContinuation(t *testing.T) {
	input := "{abc -> 1-3}"
	lx, reporter := makeTestLexer(t, input, flowKeywords)

	wantOk := []string{"{", "abc", "->", "1"}
	for i, want := range wantOk {
		tok := lx.Next()
		if tok.Kind == token.Invalid || tok.Text != want {
			t.Fatalf("Token %d: expected %q, got %v %q", i, want, tok.Kind, tok.Text)
		}
	}

	// Обход трая по "-" обрывается на "3": ошибка на смещении 10
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("Expected Invalid, got %v %q", tok.Kind, tok.Text)
	}
	if tok.Span.Start != 10 {
		t.Errorf("Error offset = %d, want 10", tok.Span.Start)
	}
	if got := lx.LastError(); got == nil || got.Code != diag.LexBadNumber {
		t.Errorf("LastError = %v, want LexBadNumber", got)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report")
	}

	// Скан завершается на ошибке продолжения числа
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("Expected EOF after numeric error, got %v %q", next.Kind, next.Text)
	}
}

func TestScenario_NestedFlow(t *testing.T) {
	expectTexts(t, "{inst_1 -> inst_2 -> {inst_4 <- inst_3} -> inst_5}", flowKeywords,
		[]string{"{", "inst_1", "->", "inst_2", "->", "{", "inst_4", "<-", "inst_3", "}", "->", "inst_5", "}"})
}

func TestScenario_AdjacentKeywords(t *testing.T) {
	expectTexts(t, "{aaa ->bbb }", flowKeywords,
		[]string{"{", "aaa", "->", "bbb", "}"})
}

func TestScenario_Prolog(t *testing.T) {
	expectTexts(t, "ab(cd(ef),gh)", prologKeywords,
		[]string{"ab", "(", "cd", "(", "ef", ")", ",", "gh", ")"})

	expectTexts(t, "[2]a:-b,c.\n", prologKeywords,
		[]string{"[", "2", "]", "a", ":-", "b", ",", "c", "."})

	expectTexts(t, "f(a ,b ,X)", prologKeywords,
		[]string{"f", "(", "a", ",", "b", ",", "X", ")"})

	expectTexts(t, "ab(c_d(e_f),g_h)))(", prologKeywords,
		[]string{"ab", "(", "c_d", "(", "e_f", ")", ",", "g_h", ")", ")", ")", "("})
}

func TestScenario_StarsAndStrings(t *testing.T) {
	kws := []string{"->", "<-", "(", ")", "{", "=", ",", "}", "[", "|", "]", "*", "."}
	expectTexts(t, `(*"3" -> int -> *"i".write)`, kws,
		[]string{"(", "*", `"3"`, "->", "int", "->", "*", `"i"`, ".", "write", ")"})
}

// ====== Ошибки ======

func TestIncompleteKeyword_AtEndOfInput(t *testing.T) {
	input := "{inst1 -> inst2 -> {inst4 <- inst3} -"
	lx, _ := makeTestLexer(t, input, flowKeywords)

	tokens := collectAllTokens(lx)
	last := tokens[len(tokens)-1]
	if last.Kind != token.Invalid {
		t.Fatalf("Expected trailing Invalid, got %v", last.Kind)
	}
	// "-" съеден, терминал не достигнут: ошибка на конце текста
	if int(last.Span.Start) != len(input) {
		t.Errorf("Error offset = %d, want %d", last.Span.Start, len(input))
	}
	if got := lx.LastError(); got == nil || got.Code != diag.LexIncompleteKeyword {
		t.Errorf("LastError = %v, want LexIncompleteKeyword", got)
	}
}

func TestIncompleteKeyword_MidInput(t *testing.T) {
	input := "{inst1 -> inst2 -> {inst4 < inst3}"
	lx, _ := makeTestLexer(t, input, flowKeywords)

	tokens := collectAllTokens(lx)
	wantOk := []string{"{", "inst1", "->", "inst2", "->", "{", "inst4"}
	if len(tokens) != len(wantOk)+1 {
		t.Fatalf("Expected %d tokens, got %v", len(wantOk)+1, tokensToString(tokens))
	}
	for i, want := range wantOk {
		if tokens[i].Text != want {
			t.Errorf("Token %d: expected %q, got %q", i, want, tokens[i].Text)
		}
	}
	last := tokens[len(tokens)-1]
	if last.Kind != token.Invalid {
		t.Fatalf("Expected Invalid, got %v", last.Kind)
	}
	// "<" съеден, обход остановился на пробеле
	wantOff := len("{inst1 -> inst2 -> {inst4 <")
	if int(last.Span.Start) != wantOff {
		t.Errorf("Error offset = %d, want %d", last.Span.Start, wantOff)
	}
}

func TestLastError_SurvivesEOF(t *testing.T) {
	lx, _ := makeTestLexer(t, "{a -", flowKeywords)

	// Дочитываем поток до конца, включая EOF
	tokens := collectAllTokens(lx)
	last := tokens[len(tokens)-1]
	if last.Kind != token.Invalid {
		t.Fatalf("Expected trailing Invalid, got %v", last.Kind)
	}

	if got := lx.LastError(); got == nil || got.Code != diag.LexIncompleteKeyword {
		t.Errorf("LastError after EOF = %v, want LexIncompleteKeyword", got)
	}
	// Повторный EOF тоже не сбрасывает ошибку
	lx.Next()
	if got := lx.LastError(); got == nil {
		t.Error("LastError must survive repeated EOF reads")
	}
}

func TestUnknownChar_ContinuesScan(t *testing.T) {
	// Нераспознанный символ даёт ошибку и съедается; скан продолжается
	lx, reporter := makeTestLexer(t, "a_b*a_c(", prologKeywords)

	tokens := collectAllTokens(lx)
	wantTexts := []string{"a_b", "*", "a_c", "("}
	if len(tokens) != len(wantTexts) {
		t.Fatalf("Expected %d tokens, got %v", len(wantTexts), tokensToString(tokens))
	}
	if tokens[1].Kind != token.Invalid || tokens[1].Span.Start != 3 {
		t.Errorf("Expected Invalid at 3, got %v at %d", tokens[1].Kind, tokens[1].Span.Start)
	}
	if tokens[2].Text != "a_c" || tokens[3].Text != "(" {
		t.Errorf("Scan should continue after unknown char: %v", tokensToString(tokens))
	}
	if len(reporter.diagnostics) != 1 {
		t.Errorf("Expected exactly one diagnostic, got %v", reporter.ErrorMessages())
	}
	if reporter.diagnostics[0].Code != diag.LexUnknownChar {
		t.Errorf("Code = %v, want LexUnknownChar", reporter.diagnostics[0].Code)
	}
}

func TestNumber_DisqualifyingQuote(t *testing.T) {
	lx, _ := makeTestLexer(t, `1"x"`, flowKeywords)

	tok := lx.Next()
	if tok.Kind != token.Number || tok.Text != "1" {
		t.Fatalf("Expected Number \"1\", got %v %q", tok.Kind, tok.Text)
	}

	tok = lx.Next()
	if tok.Kind != token.Invalid || tok.Span.Start != 1 {
		t.Fatalf("Expected Invalid at 1, got %v at %d", tok.Kind, tok.Span.Start)
	}
	if got := lx.LastError(); got == nil || got.Code != diag.LexBadNumber {
		t.Errorf("LastError = %v, want LexBadNumber", got)
	}
}

func TestNumber_DisqualifyingChar(t *testing.T) {
	// "-" не является даже префиксом ключевого слова: ошибка указывает
	// прямо на него
	lx, _ := makeTestLexer(t, "1-3", []string{"{", "}"})

	tok := lx.Next()
	if tok.Kind != token.Number || tok.Text != "1" {
		t.Fatalf("Expected Number \"1\", got %v %q", tok.Kind, tok.Text)
	}
	tok = lx.Next()
	if tok.Kind != token.Invalid || tok.Span.Start != 1 {
		t.Fatalf("Expected Invalid at 1, got %v at %d", tok.Kind, tok.Span.Start)
	}

	// C "->" в наборе "-" съедается обходом трая, и ошибка смещается на
	// символ, где обход остановился
	lx2, _ := makeTestLexer(t, "1-3", flowKeywords)

	tok = lx2.Next()
	if tok.Kind != token.Number || tok.Text != "1" {
		t.Fatalf("Expected Number \"1\", got %v %q", tok.Kind, tok.Text)
	}
	tok = lx2.Next()
	if tok.Kind != token.Invalid || tok.Span.Start != 2 {
		t.Fatalf("Expected Invalid at 2, got %v at %d", tok.Kind, tok.Span.Start)
	}
}

func TestNumber_ValidContinuations(t *testing.T) {
	// Пробел, конец текста и полное ключевое слово — допустимые продолжения
	expectTexts(t, "12 34", flowKeywords, []string{"12", "34"})
	expectTexts(t, "12", flowKeywords, []string{"12"})
	expectTexts(t, "12}", flowKeywords, []string{"12", "}"})
	expectTexts(t, "[2]", prologKeywords, []string{"[", "2", "]"})
}

// ====== Границы ======

func TestEmptyInput(t *testing.T) {
	lx, _ := makeTestLexer(t, "", flowKeywords)
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("Expected EOF for empty input, got %v", tok.Kind)
	}
}

func TestWhitespaceOnlyInput(t *testing.T) {
	lx, _ := makeTestLexer(t, "   \t\n  \r ", flowKeywords)
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("Expected EOF for whitespace-only input, got %v", tok.Kind)
	}
}

func TestEOF_Repeats(t *testing.T) {
	lx, _ := makeTestLexer(t, "x", flowKeywords)

	if tok := lx.Next(); tok.Kind != token.Word {
		t.Fatalf("Expected Word, got %v", tok.Kind)
	}
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("Expected EOF, got %v", tok.Kind)
	}
	// Повторные вызовы Next после EOF продолжают возвращать EOF
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("Expected EOF again, got %v", tok.Kind)
	}
}

func TestPeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer(t, "a b c", flowKeywords)

	peek1 := lx.Peek()
	if peek1.Text != "a" {
		t.Errorf("First peek: expected \"a\", got %q", peek1.Text)
	}
	peek2 := lx.Peek()
	if peek2.Text != peek1.Text {
		t.Error("Second peek should return the same token")
	}
	next1 := lx.Next()
	if next1.Text != peek1.Text {
		t.Error("Next should return the peeked token")
	}
	next2 := lx.Next()
	if next2.Text != "b" {
		t.Errorf("Expected \"b\", got %q", next2.Text)
	}
}

func TestEveryNonSpaceCharInExactlyOneToken(t *testing.T) {
	// Без ключевых слов, кавычек и ошибок конкатенация токенов
	// восстанавливает вход с точностью до пробелов
	inputs := []string{
		"foo bar_baz  qux",
		"  one\ttwo\nthree ",
		"a1 b2 c3",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makeTestLexer(t, input, nil)
			tokens := collectAllTokens(lx)

			var joined strings.Builder
			for _, tok := range tokens {
				if tok.Kind == token.Invalid {
					t.Fatalf("Unexpected Invalid token: %v", reporter.ErrorMessages())
				}
				joined.WriteString(tok.Text)
			}

			stripped := strings.Join(strings.Fields(input), "")
			if joined.String() != stripped {
				t.Errorf("Joined tokens = %q, want %q", joined.String(), stripped)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	// Токенизация склейки через одиночные пробелы даёт те же токены
	input := "{aaa ->bbb ccc}"
	lx, _ := makeTestLexer(t, input, flowKeywords)
	first := collectAllTokens(lx)

	parts := make([]string, len(first))
	for i, tok := range first {
		parts[i] = tok.Text
	}
	rejoined := strings.Join(parts, " ")

	lx2, _ := makeTestLexer(t, rejoined, flowKeywords)
	second := collectAllTokens(lx2)

	if len(first) != len(second) {
		t.Fatalf("Token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Kind != second[i].Kind {
			t.Errorf("Token %d differs: %v %q vs %v %q",
				i, first[i].Kind, first[i].Text, second[i].Kind, second[i].Text)
		}
	}
}

// Бенчмарки

func BenchmarkLexer_Flow(b *testing.B) {
	input := "{inst_1 -> inst_2 -> {inst_4 <- inst_3} -> inst_5}"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.txt", []byte(input))
	file := fs.Get(fileID)
	keys, err := keyword.New(flowKeywords)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lx := lexer.New(file, keys, lexer.Options{})
		for {
			if tok := lx.Next(); tok.Kind == token.EOF {
				break
			}
		}
	}
}

func BenchmarkLexer_LargeInput(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "{step_%d -> \"payload %d\" -> next_%d}\n", i, i, i+1)
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.txt", []byte(sb.String()))
	file := fs.Get(fileID)
	keys, err := keyword.New(flowKeywords)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lx := lexer.New(file, keys, lexer.Options{})
		for {
			if tok := lx.Next(); tok.Kind == token.EOF {
				break
			}
		}
	}
}
