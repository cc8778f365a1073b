package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"keylex/internal/diag"
	"keylex/internal/keyword"
	"keylex/internal/lexer"
	"keylex/internal/source"
	"keylex/internal/token"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Относительный путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
}

// listFiles возвращает отсортированный список всех файлов с заданным
// расширением в директории
func listFiles(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все файлы с расширением ext в директории
// параллельно, одним набором ключевых слов.
func TokenizeDir(ctx context.Context, dir, ext string, keywords []string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	keys, err := keyword.New(keywords)
	if err != nil {
		return nil, nil, err
	}

	// Собираем список файлов
	files, err := listFiles(dir, ext)
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Создаём FileSet и предзагружаем все файлы: FileSet не потокобезопасен,
	// поэтому вся запись в него происходит до запуска горутин
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	// Параллельная токенизация
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = TokenizeDirResult{
					Path: path,
					Bag:  bag,
				}
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
			lx := lexer.New(file, keys, lexer.Options{Reporter: reporter})

			var tokens []token.Token
			for {
				tok := lx.Next()
				if tok.Kind == token.EOF {
					break
				}
				tokens = append(tokens, tok)
			}

			// Сохраняем результат (мьютекс не нужен — индекс i уникален)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}
