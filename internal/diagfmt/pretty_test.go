package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"keylex/internal/diag"
	"keylex/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("abc \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.txt", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Primary:  source.Span{File: fileID, Start: 4, End: 25},
		Message:  "unterminated string literal",
	})

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{
			name:     "Absolute path",
			mode:     PathModeAbsolute,
			contains: "/home/user/project/src/test.txt",
		},
		{
			name:     "Relative path",
			mode:     PathModeRelative,
			contains: "src/test.txt",
		},
		{
			name:     "Basename only",
			mode:     PathModeBasename,
			contains: "test.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  1,
				PathMode: tt.mode,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}

			// Проверяем что есть основные элементы
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "LEX1002") {
				t.Error("Expected LEX1002 code in output")
			}
			if !strings.Contains(output, "unterminated string") {
				t.Error("Expected error message in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string // что должно быть в выводе
	}{
		{
			name:     "Short path - as is",
			path:     "test.txt",
			expected: "test.txt",
		},
		{
			name:     "Long absolute path - basename",
			path:     "/very/long/absolute/path/to/some/nested/directory/file.txt",
			expected: "file.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("abc def 42\n")
			fileID := fs.AddVirtual(tt.path, content)

			bag := diag.NewBag(10)
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.LexUnknownChar,
				Primary:  source.Span{File: fileID, Start: 8, End: 10},
				Message:  "test warning",
			})

			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  0,
				PathMode: PathModeAuto,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("{abc -> 1-3}\n")
	fileID := fs.AddVirtual("flow.txt", content)

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexBadNumber,
		Primary:  source.Point(fileID, 10),
		Message:  "invalid numeric continuation",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "flow.txt:1:11: ERROR LEX1003: invalid numeric continuation") {
		t.Fatalf("Unexpected header:\n%s", output)
	}

	lines := strings.Split(output, "\n")
	if len(lines) < 3 {
		t.Fatalf("Expected context + caret lines, got:\n%s", output)
	}
	if lines[1] != "  {abc -> 1-3}" {
		t.Errorf("Context line = %q", lines[1])
	}
	// Точечный span: одиночная каретка под колонкой 11
	if lines[2] != "  "+strings.Repeat(" ", 10)+"^" {
		t.Errorf("Caret line = %q", lines[2])
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("xy \"hello\n")
	fileID := fs.AddVirtual("notes.txt", content)

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Primary:  source.Span{File: fileID, Start: 3, End: 9},
		Message:  "unterminated string literal",
		Notes: []diag.Note{
			{Span: source.Point(fileID, 3), Msg: "string opened here"},
		},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note: notes.txt:1:4: string opened here") {
		t.Fatalf("Expected note with location, got:\n%s", output)
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("a # b\n")
	fileID := fs.AddVirtual("json.txt", content)

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Primary:  source.Span{File: fileID, Start: 2, End: 3},
		Message:  "unrecognized character",
	})

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		`"code": "LEX1001"`,
		`"severity": "ERROR"`,
		`"file": "json.txt"`,
		`"start_byte": 2`,
		`"start_line": 1`,
		`"count": 1`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %s in output:\n%s", want, output)
		}
	}
}

func TestJSON_MaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.txt", []byte("# # #\n"))

	bag := diag.NewBag(10)
	for off := uint32(0); off < 5; off += 2 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.LexUnknownChar,
			Primary:  source.Span{File: fileID, Start: off, End: off + 1},
			Message:  "unrecognized character",
		})
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if output.Count != 2 {
		t.Errorf("Count = %d, want 2", output.Count)
	}
	if len(output.Diagnostics) != 2 {
		t.Errorf("Diagnostics = %d, want 2", len(output.Diagnostics))
	}
}
