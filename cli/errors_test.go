package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/contrato/loader"
)

func TestErrorRendererJSONSyntaxError(t *testing.T) {
	source := []byte("{\n  \"document_type\": \"distrato\",\n  \"payload\": {,}\n}")

	_, err := loader.ParseDocument("payload.json", source)
	assert.Error(t, err)

	out := NewErrorRenderer(source).Render(err)
	assert.Contains(t, out, "failed to decode payload.json")
	assert.Contains(t, out, `"payload": {,}`)

	lines := strings.Split(out, "\n")
	var caret string
	for i, line := range lines {
		if strings.Contains(line, `"payload": {,}`) {
			caret = lines[i+1]
		}
	}
	assert.Equal(t, "   "+strings.Repeat(" ", 14)+"^", caret)
}

func TestErrorRendererJSONTypeError(t *testing.T) {
	source := []byte("{\n  \"document_type\": \"compra_venda\",\n  \"payload\": {\"numero_parcelas\": \"três\"}\n}")

	_, err := loader.ParseDocument("payload.json", source)
	assert.Error(t, err)

	out := NewErrorRenderer(source).Render(err)
	assert.Contains(t, out, "numero_parcelas")
	assert.Contains(t, out, "^")
}

func TestErrorRendererYAMLError(t *testing.T) {
	source := []byte("document_type: distrato\npayload:\n  empresa: [\n")

	_, err := loader.ParseDocument("payload.yaml", source)
	assert.Error(t, err)

	out := NewErrorRenderer(source).Render(err)
	assert.Contains(t, out, "failed to decode payload.yaml")
	assert.Contains(t, out, "   payload:")
	assert.NotContains(t, out, "^")
}

func TestErrorRendererWithoutPosition(t *testing.T) {
	err := errors.New("plain failure")
	assert.Equal(t, "plain failure", NewErrorRenderer([]byte("x")).Render(err))

	decodeErr := &loader.DecodeError{Filename: "a.yaml", Err: errors.New("boom")}
	assert.Equal(t, decodeErr.Error(), NewErrorRenderer([]byte("x")).Render(decodeErr))
	assert.Equal(t, decodeErr.Error(), NewErrorRenderer(nil).Render(decodeErr))
}

func TestOffsetPosition(t *testing.T) {
	source := []byte("ab\ncd\nef")

	line, col := offsetPosition(source, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = offsetPosition(source, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = offsetPosition(source, 100)
	assert.Equal(t, 3, line)
	assert.Equal(t, 3, col)
}
