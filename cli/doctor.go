package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/output"
	"github.com/robinvdvleuten/contrato/render"
)

// DoctorCmd provides utilities for debugging templates.
type DoctorCmd struct {
	Tokens    TokensCmd    `cmd:"" help:"List the variables a template references."`
	Templates TemplatesCmd `cmd:"" help:"List the templates of the template library."`
}

// TokensCmd lists the tokens of a template file.
type TokensCmd struct {
	File FileOrStdin `help:"Template text (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	text, err := cmd.File.Read()
	if err != nil {
		return err
	}

	tokens := render.Tokens(string(text))
	width := 0
	for _, key := range tokens {
		width = max(width, runewidth.StringWidth(key))
	}

	styles := output.NewStyles(ctx.Stdout)
	for _, key := range tokens {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s\n", styles.Key(runewidth.FillRight(key, width)), styles.Dim(describeKey(key)))
	}
	return nil
}

// TemplatesCmd lists the template library.
type TemplatesCmd struct {
	Templates string `help:"Directory to read the template library from." type:"existingdir"`
	Type      string `help:"Only list templates of this document type."`
}

// Run executes the templates command.
func (cmd *TemplatesCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "templates")
	if err != nil {
		return err
	}
	defer s.close()

	var want contract.DocumentType
	if cmd.Type != "" {
		if want, err = contract.ParseDocumentType(cmd.Type); err != nil {
			return err
		}
	}

	lib, err := s.loader(cmd.Templates).LoadTemplates(s.ctx)
	if err != nil {
		return err
	}

	styles := output.NewStyles(ctx.Stdout)
	for _, tmpl := range lib.All() {
		if want != "" && tmpl.Type != want {
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s  %s\n",
			styles.Key(runewidth.FillRight(tmpl.ID, 28)),
			runewidth.FillRight(tmpl.Type.Label(), 36),
			styles.Dim(fmt.Sprintf("%d variable(s)", len(render.Tokens(tmpl.Text)))),
		)
	}
	return nil
}
