package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/record"
)

type InsertCmd struct {
	Draft      string `help:"Draft body file." arg:"" type:"path"`
	Registry   string `help:"Client registry file (defaults to the configured registry)." type:"existingfile"`
	Company    int    `help:"Insert from the company with this id." xor:"source" required:""`
	Individual int    `help:"Insert from the individual with this id." xor:"source" required:""`
	Key        string `help:"Catalog variable to insert." required:""`
	Write      bool   `help:"Rewrite the draft file instead of printing the result." short:"w"`
}

func (cmd *InsertCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "insert")
	if err != nil {
		return err
	}
	defer s.close()

	body, err := os.ReadFile(cmd.Draft)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read draft: %w", err)
	}

	registryFile := s.registryFile(cmd.Registry)
	if registryFile == "" {
		return fmt.Errorf("no registry given: use --registry or set registry.file in the configuration")
	}
	result, err := loader.New(loader.WithFollowIncludes()).LoadRegistry(s.ctx, registryFile)
	if err != nil {
		return err
	}

	src, err := insertionSource(result.Registry, cmd.Company, cmd.Individual)
	if err != nil {
		return err
	}

	guard := catalog.NewGuard(catalog.WithNoticeTTL(s.cfg.Guard.NoticeTTL))
	ins := guard.Insert(string(body), src, cmd.Key)
	if ins.Notice != nil {
		printError(ctx.Stderr, ins.Notice.Message)
		return NewCommandError(1)
	}

	if !cmd.Write {
		_, _ = fmt.Fprint(ctx.Stdout, ins.Body)
		return nil
	}
	if err := os.WriteFile(cmd.Draft, []byte(ins.Body), 0o644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Inserted {{%s}} into %s", cmd.Key, pathStyle.Render(cmd.Draft)))
	return nil
}

// insertionSource selects the record a variable is inserted from.
func insertionSource(reg *record.Registry, companyID, individualID int) (*catalog.Source, error) {
	if companyID != 0 {
		c, ok := reg.Company(companyID)
		if !ok {
			return nil, fmt.Errorf("company %d not found in registry", companyID)
		}
		return catalog.CompanySource(c), nil
	}

	i, ok := reg.Individual(individualID)
	if !ok {
		return nil, fmt.Errorf("individual %d not found in registry", individualID)
	}
	return catalog.IndividualSource(i), nil
}
