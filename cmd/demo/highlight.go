package main

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"vtengine/cell"
)

// highlightedSpan is one run of source text sharing a single style, the
// unit the demo writes into the back buffer with cell.Buffer.Write.
type highlightedSpan struct {
	Text  string
	Style cell.Style
}

// highlight tokenizes code as lang using chroma and maps each token's
// rendition onto a cell.Style.
//
// Grounded on tui/highlight_chroma.go's Highlight: same lexer lookup,
// Coalesce, and monokai style fallback chain. Generalized from "ANSI
// escape string per category" to a packed cell.Style built through
// Style.With*, since a vtengine component diffs by style value rather
// than by replaying raw escapes.
func highlight(code, lang string) []highlightedSpan {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []highlightedSpan{{Text: code, Style: cell.Default}}
	}

	var spans []highlightedSpan
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)

		s := cell.Default
		if entry.Bold == chroma.Yes {
			s = s.WithAttr(cell.AttrBold, true)
		}
		if entry.Underline == chroma.Yes {
			s = s.WithAttr(cell.AttrUnderline, true)
		}
		if entry.Italic == chroma.Yes {
			s = s.WithAttr(cell.AttrItalic, true)
		}
		s = s.WithForeground(tokenColor(token.Type))

		spans = append(spans, highlightedSpan{Text: token.Value, Style: s})
	}
	return spans
}

// tokenColor maps a chroma token category to one of the 16 standard ANSI
// colors (other categories get cell.NoColor), the same category switch
// tui/highlight_chroma.go used, but producing a cell.Color rather than a
// raw SGR escape string.
func tokenColor(t chroma.TokenType) cell.Color {
	switch t.Category() {
	case chroma.Keyword:
		return cell.Ansi(cell.AnsiMagenta, cell.IntensityNormal)
	case chroma.Name:
		return cell.Ansi(cell.AnsiWhite, cell.IntensityNormal)
	case chroma.LiteralString:
		return cell.Ansi(cell.AnsiGreen, cell.IntensityNormal)
	case chroma.LiteralNumber:
		return cell.Ansi(cell.AnsiCyan, cell.IntensityNormal)
	case chroma.Comment:
		return cell.Ansi(cell.AnsiBlack, cell.IntensityBright)
	case chroma.Operator, chroma.Punctuation:
		return cell.Ansi(cell.AnsiWhite, cell.IntensityNormal)
	default:
		return cell.NoColor
	}
}
