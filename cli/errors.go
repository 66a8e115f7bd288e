package cli

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/contrato/loader"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})

	yamlLine = regexp.MustCompile(`line (\d+)`)
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats err. Decode errors that carry a position are shown with the
// surrounding source lines.
func (r *ErrorRenderer) Render(err error) string {
	var decodeErr *loader.DecodeError
	if r.source != nil && errors.As(err, &decodeErr) {
		if line, col, ok := errorPosition(decodeErr.Err, r.source); ok {
			return r.renderWithSourceContext(line, col, err.Error())
		}
	}
	return err.Error()
}

// errorPosition returns the 1-based line and column an error points at. Column is
// zero when only the line is known.
func errorPosition(err error, source []byte) (line, col int, ok bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		// Offset counts the offending byte.
		line, col = offsetPosition(source, max(syntaxErr.Offset-1, 0))
		return line, col, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col = offsetPosition(source, typeErr.Offset)
		return line, col, true
	}

	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		n, convErr := strconv.Atoi(m[1])
		if convErr == nil && n > 0 {
			return n, 0, true
		}
	}
	return 0, 0, false
}

func offsetPosition(source []byte, offset int64) (line, col int) {
	if offset > int64(len(source)) {
		offset = int64(len(source))
	}
	line, col = 1, 1
	for _, b := range source[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func (r *ErrorRenderer) renderWithSourceContext(line, col int, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

	startLine := max(line-3, 0)
	endLine := min(line+1, len(sourceLines)-1)

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		if i == line-1 && col > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", col-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
