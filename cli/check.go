package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/render"
)

type CheckCmd struct {
	File       FileOrStdin `help:"Payload document (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Template   string      `help:"Template file (YAML, JSON or raw text)." type:"existingfile" xor:"template"`
	TemplateID string      `help:"Template id from the template library." name:"template-id" xor:"template"`
	Templates  string      `help:"Directory to read the template library from." type:"existingdir"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "check")
	if err != nil {
		return err
	}
	defer s.close()

	doc, source, err := s.document(&cmd.File)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).Render(err))
		printError(ctx.Stderr, "invalid payload document")
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

	if len(rendered.Unresolved) == 0 {
		printSuccess(ctx.Stdout, fmt.Sprintf("All %d variable(s) of %s resolved", len(render.Tokens(tmpl.Text)), tmpl.ID))
		return nil
	}

	for _, key := range rendered.Unresolved {
		printError(ctx.Stderr, describeKey(key))
	}
	_, _ = fmt.Fprintln(ctx.Stderr)
	printError(ctx.Stderr, fmt.Sprintf("%d unresolved variable(s) in %s", len(rendered.Unresolved), tmpl.ID))
	return NewCommandError(1)
}

// describeKey names a token, adding its catalog label when it has one.
func describeKey(key string) string {
	token := render.Token(key)
	for _, scope := range []catalog.Scope{catalog.CompanyScope, catalog.IndividualScope} {
		if e, ok := catalog.Lookup(scope, key); ok {
			return fmt.Sprintf("%s (%s)", token, e.Label)
		}
	}
	return token
}
