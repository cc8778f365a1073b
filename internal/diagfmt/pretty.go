package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"keylex/internal/diag"
	"keylex/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := formatPath(f, fs, opts.PathMode)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		severityLabel(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message,
	)

	writeContext(w, f, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteStart, _ := fs.Resolve(note.Span)
			noteFile := fs.Get(note.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				formatPath(noteFile, fs, opts.PathMode),
				noteStart.Line, noteStart.Col, note.Msg)
		}
	}
}

// writeContext печатает строки вокруг диагностики и подчёркивание ^~~~
// под первичным span. Для многострочного span подчёркивается только
// первая строка.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts) {
	first := start.Line
	if ctx := uint32(max(int(opts.Context), 0)); ctx < first-1 {
		first = start.Line - ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(max(int(opts.Context), 0))

	for lineNum := first; lineNum <= last; lineNum++ {
		line := f.GetLine(lineNum)
		if line == "" && lineNum != start.Line {
			continue
		}
		shown := line
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "  %s\n", shown)

		if lineNum != start.Line {
			continue
		}

		// Подчёркивание: табы из строки сохраняются в отступе,
		// чтобы каретка не съезжала
		pad := make([]byte, 0, start.Col)
		for i := uint32(0); i+1 < start.Col && int(i) < len(line); i++ {
			if line[i] == '\t' {
				pad = append(pad, '\t')
			} else {
				pad = append(pad, ' ')
			}
		}
		width := underlineWidth(start, end, line)
		fmt.Fprintf(w, "  %s%s\n", pad, caret(width, opts.Color))
	}
}

// underlineWidth ограничивает подчёркивание концом строки; точечный span
// (Start == End) подчёркивается одной кареткой.
func underlineWidth(start, end source.LineCol, line string) int {
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	lineLen := len(line)
	if rest := lineLen - int(start.Col) + 1; rest > 0 && width > rest {
		width = rest
	}
	return width
}

func caret(width int, colored bool) string {
	s := "^"
	if width > 1 {
		s += strings.Repeat("~", width-1)
	}
	if colored {
		return color.New(color.FgHiRed, color.Bold).Sprint(s)
	}
	return s
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	case diag.SevInfo:
		return color.New(color.FgCyan).Sprint(label)
	}
	return label
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}
