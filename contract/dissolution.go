package contract

import (
	"strconv"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/narrative"
	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
)

// DefaultDissolutionReason is used when no reason was chosen.
const DefaultDissolutionReason = "Não interesse na continuidade da empresa"

// DissolutionReasons are the reasons offered when closing a company.
var DissolutionReasons = []string{
	"Extinção, pelo encerramento da liquidação voluntária",
	"Incorporação",
	"Fusão",
	"Cisão Total",
	"Encerramento do processo de falência",
	"Encerramento do processo de liquidação extrajudicial",
	"Extinção, por unificação da inscrição da filial",
	"Transformação do órgão regional à condição de matriz",
	"Transformação do órgão local à condição de filial do órgão regional",
}

func prepareDissolution(env Env, p Payload) (Variables, error) {
	d, err := payloadAs[DissolutionPayload](env.Type, p)
	if err != nil || d == nil {
		return Variables{}, err
	}

	vars := Variables{
		"data_atual": normalize.ISO(env.Now),
	}

	if c := d.Company; c != nil {
		companyVars(vars, c)
		vars["empresa_data_abertura"] = c.OpeningDate
		vars["empresa_nire"] = c.LegalNature

		capital := money.Normalize(c.Capital.String(), money.Liquidation)
		vars["valor_liquidacao"] = capital
		vars["valor_ativo"] = capital
		vars["valor_passivo"] = money.Zero
		vars["valor_patrimonio_liquido"] = capital
		vars["empresa_capital_social"] = capital
	}

	responsible := d.Responsible
	if normalize.IsBlank(responsible) && len(d.Partners) > 0 {
		responsible = d.Partners[0].Person.Name
	}

	vars["data_balanco"] = d.BalanceDate
	vars["data_encerramento"] = d.ClosingDate
	vars["responsavel_documentacao"] = responsible
	vars["motivo_extincao"] = normalize.Or(d.Reason, DefaultDissolutionReason)

	if len(d.Partners) > 0 {
		dissolutionPartners(vars, d)
	}

	return vars, nil
}

func dissolutionPartners(vars Variables, d *DissolutionPayload) {
	companyAddress := vars["empresa_endereco_completo"]

	clauses := make([]string, 0, len(d.Partners))
	signers := make([]narrative.Signer, 0, len(d.Partners))
	holdings := make([]narrative.Holding, 0, len(d.Partners))

	for i, partner := range d.Partners {
		n := i + 1
		address := partnerAddress(partner, companyAddress)
		person := partner.Person

		setPartner(vars, n, person, address)
		vars[partnerKey(n, "percentual")] = partner.Percentage.String()

		clauses = append(clauses, narrative.Qualification("SÓCIO "+strconv.Itoa(n), narrative.PartyOf(person, address)))
		signers = append(signers, narrative.Signer{Name: person.Name, CPF: person.CPF})
		holdings = append(holdings, narrative.Holding{Name: person.Name, Percentage: partner.Percentage.String()})
	}

	vars["assinaturas_socios"] = narrative.Signatures(signers, narrative.PartnerSignature)
	vars["lista_socios_qualificacao"] = narrative.JoinParties(clauses)

	if len(d.Partners) > 1 {
		var capital string
		if d.Company != nil {
			capital = d.Company.Capital.String()
		}
		total, _ := money.Parse(capital)
		vars["distribuicao_patrimonio"] = narrative.Distribution(total, holdings)
	}
}

// partnerAddress picks the partner's pre-joined address, then the address entered for
// the association, then the person's registry address, then the company's.
func partnerAddress(p record.Partner, companyAddress string) string {
	if !normalize.IsBlank(p.AddressText) {
		return p.AddressText
	}
	if p.Address != nil && !normalize.IsBlank(p.Address.Street) {
		return normalize.Address(*p.Address)
	}
	if !normalize.IsBlank(p.Person.Street) {
		return normalize.Address(p.Person.Address)
	}
	return companyAddress
}

// companyVars writes the company identification keys shared by the dissolution
// and amendment documents.
func companyVars(vars Variables, c *record.Company) {
	vars["empresa_razao_social"] = c.LegalName
	vars["empresa_cnpj"] = c.CNPJ
	vars["empresa_nome_fantasia"] = c.TradeName
	vars["empresa_endereco_completo"] = normalize.Address(c.Address)
	vars["cidade_contrato"] = c.Municipality
	vars["uf_contrato"] = c.State
}
