package driver

import (
	"keylex/internal/diag"
	"keylex/internal/keyword"
	"keylex/internal/lexer"
	"keylex/internal/source"
	"keylex/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Results []lexer.Result
	Bag     *diag.Bag
}

// Tokenize загружает файл с диска и токенизирует его с заданным набором
// ключевых слов.
func Tokenize(path string, keywords []string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fileID, keywords, maxDiagnostics)
}

// TokenizeText токенизирует текст из памяти (stdin, тесты).
func TokenizeText(name string, text []byte, keywords []string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, text)
	return tokenizeFile(fs, fileID, keywords, maxDiagnostics)
}

// TokenizeCached пробует дисковый кэш, прежде чем сканировать. При промахе
// сканирует и сохраняет чистый результат (скан без диагностик). Возвращает
// признак попадания; Results при попадании пуст — кэш хранит только токены.
func TokenizeCached(path string, keywords []string, maxDiagnostics int, cache *DiskCache) (*TokenizeResult, bool, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, false, err
	}
	file := fs.Get(fileID)

	keys, err := keyword.New(keywords)
	if err != nil {
		return nil, false, err
	}
	key := ScanKey(file, keys)

	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		return &TokenizeResult{
			FileSet: fs,
			File:    file,
			Tokens:  payloadToTokens(&payload, fileID),
			Bag:     diag.NewBag(maxDiagnostics),
		}, true, nil
	}

	res, err := tokenizeFile(fs, fileID, keywords, maxDiagnostics)
	if err != nil {
		return nil, false, err
	}
	if res.Bag.Len() == 0 {
		// Ошибка записи в кэш не мешает ответу
		_ = cache.Put(key, tokensToPayload(path, res.Tokens))
	}
	return res, false, nil
}

func tokenizeFile(fs *source.FileSet, fileID source.FileID, keywords []string, maxDiagnostics int) (*TokenizeResult, error) {
	file := fs.Get(fileID)

	keys, err := keyword.New(keywords)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)

	// Создаём лексер с reporter адаптером для диагностики
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	opts := lexer.Options{
		Reporter: reporterAdapter.Reporter(),
	}
	lx := lexer.New(file, keys, opts)

	// Токенизация: собираем все токены до EOF
	var tokens []token.Token
	var results []lexer.Result
	st := lexer.NewStream(lx)
	for {
		res, ok := st.Next()
		if !ok {
			break
		}
		tokens = append(tokens, res.Tok)
		results = append(results, res)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Results: results,
		Bag:     bag,
	}, nil
}
