package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/output"
)

type PrepareCmd struct {
	File   FileOrStdin `help:"Payload document (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format." enum:"text,json,repr" default:"text" short:"f"`
}

func (cmd *PrepareCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "prepare")
	if err != nil {
		return err
	}
	defer s.close()

	doc, source, err := s.document(&cmd.File)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).Render(err))
		return NewCommandError(1)
	}

	vars, err := s.engine().Prepare(s.ctx, doc.Type, doc.Payload)
	if err != nil {
		return err
	}

	return writeVariables(ctx.Stdout, vars, cmd.Format, output.NewStyles(ctx.Stdout))
}

func writeVariables(w io.Writer, vars contract.Variables, format string, styles *output.Styles) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(vars)
	case "repr":
		repr.New(w, repr.Indent("  ")).Println(map[string]string(vars))
		return nil
	}

	keys := vars.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, runewidth.StringWidth(k))
	}
	indent := strings.Repeat(" ", width+2)

	for _, k := range keys {
		value := strings.ReplaceAll(vars[k], "\n", "\n"+indent)
		_, _ = fmt.Fprintf(w, "%s  %s\n", styles.Key(runewidth.FillRight(k, width)), value)
	}
	return nil
}
