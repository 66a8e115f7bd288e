package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/output"
	"github.com/robinvdvleuten/contrato/render"
)

type CatalogCmd struct {
	Scope string `help:"Only list variables of this scope (company or individual)." enum:"company,individual,all" default:"all"`
}

func (cmd *CatalogCmd) Run(ctx *kong.Context, globals *Globals) error {
	entries := catalog.Entries
	if scope, ok := catalog.ParseScope(cmd.Scope); ok {
		entries = catalog.InScope(scope)
	}

	writeCatalog(ctx.Stdout, entries, output.NewStyles(ctx.Stdout))
	return nil
}

// writeCatalog lists entries grouped by scope with aligned columns.
func writeCatalog(w io.Writer, entries []catalog.Entry, styles *output.Styles) {
	tokenWidth, labelWidth := 0, 0
	for _, e := range entries {
		tokenWidth = max(tokenWidth, runewidth.StringWidth(render.Token(e.Key)))
		labelWidth = max(labelWidth, runewidth.StringWidth(e.Label))
	}

	var scope catalog.Scope
	for _, e := range entries {
		if e.Scope != scope {
			if scope != "" {
				_, _ = fmt.Fprintln(w)
			}
			scope = e.Scope
			_, _ = fmt.Fprintln(w, styles.Keyword(scopeTitle(scope)))
		}
		_, _ = fmt.Fprintf(w, "  %s  %s  %s\n",
			styles.Key(runewidth.FillRight(render.Token(e.Key), tokenWidth)),
			runewidth.FillRight(e.Label, labelWidth),
			styles.Dim(e.Default),
		)
	}
}

func scopeTitle(scope catalog.Scope) string {
	if scope == catalog.IndividualScope {
		return "Pessoa Física"
	}
	return "Empresa"
}
