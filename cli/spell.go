package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/money"
)

type SpellCmd struct {
	Value string `help:"Amount in Brazilian notation, e.g. 1.234,56." arg:""`
	Stub  bool   `help:"Use the short form printed in purchase-and-sale contracts."`
}

func (cmd *SpellCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Stub {
		_, _ = fmt.Fprintln(ctx.Stdout, money.WordsStub(cmd.Value))
		return nil
	}

	d, ok := money.Parse(cmd.Value)
	if !ok {
		return fmt.Errorf("invalid amount %q", cmd.Value)
	}
	_, _ = fmt.Fprintln(ctx.Stdout, money.Words(d))
	return nil
}
