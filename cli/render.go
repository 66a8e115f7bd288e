package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/output"
)

type RenderCmd struct {
	File       FileOrStdin `help:"Payload document (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Template   string      `help:"Template file (YAML, JSON or raw text)." type:"existingfile" xor:"template"`
	TemplateID string      `help:"Template id from the template library." name:"template-id" xor:"template"`
	Templates  string      `help:"Directory to read the template library from." type:"existingdir"`
	Highlight  bool        `help:"Highlight unresolved variables."`
	Output     string      `help:"Write the document to a file instead of stdout." short:"o" type:"path"`
}

func (cmd *RenderCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "render")
	if err != nil {
		return err
	}
	defer s.close()

	doc, source, err := s.document(&cmd.File)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).Render(err))
		return NewCommandError(1)
	}

	tmpl, err := s.template(doc, cmd.Template, cmd.TemplateID, cmd.Templates)
	if err != nil {
		return err
	}

	rendered, err := s.engine().Compose(s.ctx, tmpl, doc.Payload)
	if err != nil {
		return err
	}

	if cmd.Output != "" {
		if err := os.WriteFile(cmd.Output, []byte(rendered.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
		}
		printSuccess(ctx.Stderr, fmt.Sprintf("Rendered %s to %s", tmpl.ID, pathStyle.Render(cmd.Output)))
	} else {
		text := rendered.Text
		if cmd.Highlight {
			text = output.NewStyles(ctx.Stdout).Highlight(text)
		}
		_, _ = fmt.Fprintln(ctx.Stdout, text)
	}

	if n := len(rendered.Unresolved); n > 0 {
		printWarningf(ctx.Stderr, "%d unresolved variable(s): %s", n, strings.Join(rendered.Unresolved, ", "))
	}
	return nil
}
