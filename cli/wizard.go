package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/record"
)

type WizardCmd struct {
	Registry  string `help:"Client registry file (defaults to the configured registry)." type:"existingfile"`
	Templates string `help:"Directory to read the template library from." type:"existingdir"`
	Save      string `help:"Write the payload document to this file." type:"path"`
	Render    bool   `help:"Render the document once built." default:"true" negatable:""`
}

func (cmd *WizardCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !isTerminal() {
		return fmt.Errorf("the wizard needs an interactive terminal")
	}

	s, err := newSession(ctx, globals, "wizard")
	if err != nil {
		return err
	}
	defer s.close()

	registryFile := s.registryFile(cmd.Registry)
	if registryFile == "" {
		return fmt.Errorf("no registry given: use --registry or set registry.file in the configuration")
	}
	result, err := loader.New(loader.WithFollowIncludes()).LoadRegistry(s.ctx, registryFile)
	if err != nil {
		return err
	}
	reg := result.Registry

	var a wizardAnswers
	if err := huh.NewForm(huh.NewGroup(typeSelect(&a.Type))).Run(); err != nil {
		return err
	}
	if err := huh.NewForm(a.groups(reg)...).Run(); err != nil {
		return err
	}

	doc, err := a.document(reg)
	if err != nil {
		return err
	}

	if cmd.Save != "" {
		data, err := loader.MarshalDocument(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmd.Save, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cmd.Save, err)
		}
		printSuccess(ctx.Stderr, fmt.Sprintf("Saved payload to %s", pathStyle.Render(cmd.Save)))
	}

	if !cmd.Render {
		return nil
	}

	tmpl, err := s.template(doc, "", "", cmd.Templates)
	if err != nil {
		return err
	}
	rendered, err := s.engine().Compose(s.ctx, tmpl, doc.Payload)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(ctx.Stdout, rendered.Text)
	return nil
}

// Amendment kinds offered by the wizard.
const (
	kindPartners   = "quadro_societario"
	kindCapital    = "capital_social"
	kindActivities = "quadro_atividades"
	kindAddress    = "endereco"
)

// wizardAnswers holds everything the wizard forms ask for. Fields unrelated to the
// selected document type stay empty.
type wizardAnswers struct {
	Type contract.DocumentType

	CompanyID    int
	IndividualID int
	PartnerIDs   []int
	BuyerIDs     []int

	LegalName string
	Capital   string

	BalanceDate string
	ClosingDate string
	Reason      string

	Total            string
	PaymentMode      string
	InstallmentCount string

	Kinds      []string
	NewCapital string

	Title string
	Body  string
}

func typeSelect(value *contract.DocumentType) huh.Field {
	options := make([]huh.Option[contract.DocumentType], 0, len(contract.DocumentTypes))
	for _, t := range contract.DocumentTypes {
		options = append(options, huh.NewOption(t.Label(), t))
	}
	return huh.NewSelect[contract.DocumentType]().
		Title("Tipo de documento").
		Options(options...).
		Value(value)
}

func companyOptions(reg *record.Registry, optional bool) []huh.Option[int] {
	var options []huh.Option[int]
	if optional {
		options = append(options, huh.NewOption("Nenhuma", 0))
	}
	for _, c := range reg.Companies {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", c.DisplayName(), c.CNPJ), c.ID))
	}
	return options
}

func individualOptions(reg *record.Registry, optional bool) []huh.Option[int] {
	var options []huh.Option[int]
	if optional {
		options = append(options, huh.NewOption("Nenhuma", 0))
	}
	for _, i := range reg.Individuals {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", i.Name, i.CPF), i.ID))
	}
	return options
}

// groups returns the form groups for the selected document type.
func (a *wizardAnswers) groups(reg *record.Registry) []*huh.Group {
	company := huh.NewSelect[int]().Title("Empresa").Options(companyOptions(reg, false)...).Value(&a.CompanyID)

	switch {
	case a.Type == contract.Formation:
		return []*huh.Group{huh.NewGroup(
			huh.NewInput().Title("Razão social").Value(&a.LegalName),
			huh.NewInput().Title("Capital social").Placeholder("10.000,00").Value(&a.Capital),
			huh.NewMultiSelect[int]().Title("Sócios").Options(individualOptions(reg, false)...).Value(&a.PartnerIDs),
		)}

	case a.Type.IsDissolution():
		reasons := make([]huh.Option[string], 0, len(contract.DissolutionReasons))
		for _, r := range contract.DissolutionReasons {
			reasons = append(reasons, huh.NewOption(r, r))
		}
		return []*huh.Group{huh.NewGroup(
			company,
			huh.NewInput().Title("Data do balanço").Placeholder("AAAA-MM-DD").Value(&a.BalanceDate),
			huh.NewInput().Title("Data de encerramento").Placeholder("AAAA-MM-DD").Value(&a.ClosingDate),
			huh.NewSelect[string]().Title("Motivo da extinção").Options(reasons...).Value(&a.Reason),
		)}

	case a.Type == contract.PurchaseSale:
		return []*huh.Group{
			huh.NewGroup(
				company,
				huh.NewSelect[int]().Title("Vendedor").Options(individualOptions(reg, false)...).Value(&a.IndividualID),
				huh.NewMultiSelect[int]().Title("Compradores").Options(individualOptions(reg, false)...).Value(&a.BuyerIDs),
			),
			huh.NewGroup(
				huh.NewInput().Title("Valor total da venda").Placeholder("50.000,00").Value(&a.Total),
				huh.NewSelect[string]().Title("Forma de pagamento").Options(
					huh.NewOption("À vista", contract.PaymentLumpSum),
					huh.NewOption("Parcelado", contract.PaymentInstallment),
				).Value(&a.PaymentMode),
				huh.NewInput().Title("Número de parcelas").Value(&a.InstallmentCount).Validate(optionalCount),
			),
		}

	case a.Type == contract.Amendment:
		return []*huh.Group{huh.NewGroup(
			company,
			huh.NewMultiSelect[string]().Title("Alterações").Options(
				huh.NewOption("Quadro societário", kindPartners),
				huh.NewOption("Capital social", kindCapital),
				huh.NewOption("Atividades (CNAE)", kindActivities),
				huh.NewOption("Endereço", kindAddress),
			).Value(&a.Kinds),
			huh.NewInput().Title("Novo capital social").Value(&a.NewCapital),
		)}
	}

	return []*huh.Group{huh.NewGroup(
		huh.NewSelect[int]().Title("Empresa").Options(companyOptions(reg, true)...).Value(&a.CompanyID),
		huh.NewSelect[int]().Title("Pessoa física").Options(individualOptions(reg, true)...).Value(&a.IndividualID),
		huh.NewInput().Title("Título").Value(&a.Title),
		huh.NewText().Title("Conteúdo").Value(&a.Body),
	)}
}

func optionalCount(s string) error {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 1 {
		return fmt.Errorf("informe um número inteiro positivo")
	}
	return nil
}

// document builds the payload document from the answers.
func (a *wizardAnswers) document(reg *record.Registry) (*loader.Document, error) {
	company, _ := reg.Company(a.CompanyID)
	individual, _ := reg.Individual(a.IndividualID)

	var payload contract.Payload
	switch {
	case a.Type == contract.Formation:
		payload = &contract.FormationPayload{
			LegalName: a.LegalName,
			Capital:   record.Amount(a.Capital),
			Partners:  a.founders(reg),
		}

	case a.Type.IsDissolution():
		if company == nil {
			return nil, fmt.Errorf("company %d not found in registry", a.CompanyID)
		}
		payload = &contract.DissolutionPayload{
			Company:     company,
			Partners:    reg.PartnersOf(company.ID),
			BalanceDate: a.BalanceDate,
			ClosingDate: a.ClosingDate,
			Reason:      a.Reason,
		}

	case a.Type == contract.PurchaseSale:
		sale := &contract.SalePayload{
			Company:     company,
			Seller:      individual,
			Total:       record.Amount(a.Total),
			PaymentMode: a.PaymentMode,
		}
		for _, id := range a.BuyerIDs {
			if buyer, ok := reg.Individual(id); ok {
				sale.Buyers = append(sale.Buyers, *buyer)
			}
		}
		if a.PaymentMode == contract.PaymentInstallment {
			sale.InstallmentCount, _ = strconv.Atoi(a.InstallmentCount)
		}
		payload = sale

	case a.Type == contract.Amendment:
		if company == nil {
			return nil, fmt.Errorf("company %d not found in registry", a.CompanyID)
		}
		payload = a.amendment(reg, company)

	case a.Type == contract.Custom:
		payload = &contract.CustomPayload{
			Title:      a.Title,
			Body:       a.Body,
			Company:    company,
			Individual: individual,
		}

	default:
		return nil, &contract.UnknownTypeError{Type: a.Type}
	}

	return &loader.Document{Type: a.Type, Payload: payload}, nil
}

// founders splits the capital evenly between the selected individuals.
func (a *wizardAnswers) founders(reg *record.Registry) []contract.FormationPartner {
	var partners []contract.FormationPartner
	for _, id := range a.PartnerIDs {
		if ind, ok := reg.Individual(id); ok {
			partners = append(partners, contract.FormationPartner{Individual: *ind})
		}
	}
	if len(partners) == 0 {
		return nil
	}

	share := money.Fixed(decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(len(partners)))))
	for i := range partners {
		partners[i].Percentage = record.Amount(share)
		if i == 0 {
			partners[i].Role = "Administrador"
		}
	}
	return partners
}

func (a *wizardAnswers) amendment(reg *record.Registry, company *record.Company) *contract.AmendmentPayload {
	p := &contract.AmendmentPayload{Company: company}

	for _, kind := range a.Kinds {
		switch kind {
		case kindPartners:
			p.Kinds.Partners = true
			changes := &contract.PartnerChanges{}
			for _, partner := range reg.PartnersOf(company.ID) {
				changes.Current = append(changes.Current, contract.Shareholder{
					ID:         partner.ID,
					Name:       partner.Person.Name,
					CPF:        partner.Person.CPF,
					Percentage: partner.Percentage,
				})
			}
			p.Partners = changes
		case kindCapital:
			p.Kinds.Capital = true
			p.Capital = &contract.CapitalChange{Current: company.Capital.String(), New: a.NewCapital}
		case kindActivities:
			p.Kinds.Activities = true
			changes := &contract.ActivityChanges{}
			if company.PrincipalActivity != "" {
				changes.Current = append(changes.Current, record.Activity{Code: company.PrincipalActivity})
			}
			p.Activities = changes
		case kindAddress:
			p.Kinds.Address = true
			p.Address = &contract.AddressChange{Current: company.Address}
		}
	}
	return p
}
