package contract

import (
	"strconv"
	"strings"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/narrative"
	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
	"github.com/shopspring/decimal"
)

// Formation defaults for fields the founders left blank.
const (
	defaultFormationStatus     = "solteiro(a)"
	defaultFormationProfession = "Profissional"
	formationQuotaValue        = "1,00"
	formationPaymentForm       = "Dinheiro"
)

func prepareFormation(env Env, p Payload) (Variables, error) {
	f, err := payloadAs[FormationPayload](env.Type, p)
	if err != nil || f == nil {
		return Variables{}, err
	}

	vars := Variables{
		"data_atual":                normalize.ISO(env.Now),
		"empresa_razao_social":      f.LegalName,
		"empresa_nome_fantasia":     f.TradeName,
		"empresa_capital_social":    f.Capital.String(),
		"empresa_endereco_completo": normalize.Address(f.Address),
		"cidade_contrato":           f.Municipality,
		"uf_contrato":               f.State,
		"empresa_valor_quota":       formationQuotaValue,
		"forma_integralizacao":      formationPaymentForm,
		"empresa_data_abertura":     normalize.ISO(env.Now),
	}

	if f.PrincipalActivity != nil {
		vars["empresa_cnae_principal"] = f.PrincipalActivity.Label()
	}
	vars["empresa_objeto_social"] = corporatePurpose(f)
	vars["empresa_cnaes"] = activityLines(f)

	capital, _ := money.Leading(f.Capital.String())
	vars["empresa_numero_quotas"] = strings.Replace(money.Fixed(capital), ".", "", 1)

	if len(f.Partners) > 0 {
		formationPartners(vars, capital, f.Partners)
	}

	return vars, nil
}

// corporatePurpose joins the included activities of every code, principal first.
func corporatePurpose(f *FormationPayload) string {
	var activities []string
	if f.PrincipalActivity != nil {
		activities = append(activities, f.PrincipalActivity.Activities...)
	}
	for _, a := range f.SecondaryActivities {
		activities = append(activities, a.Activities...)
	}

	if len(activities) > 0 {
		return strings.Join(activities, "; ")
	}
	if f.PrincipalActivity != nil {
		return f.PrincipalActivity.Description
	}
	return ""
}

func activityLines(f *FormationPayload) string {
	var lines []string
	if f.PrincipalActivity != nil {
		lines = append(lines, f.PrincipalActivity.Label())
	}
	for _, a := range f.SecondaryActivities {
		lines = append(lines, a.Label())
	}
	return strings.Join(lines, "\n")
}

func formationPartners(vars Variables, capital decimal.Decimal, partners []FormationPartner) {
	clauses := make([]string, 0, len(partners))
	holdings := make([]narrative.Holding, 0, len(partners))
	signers := make([]narrative.Signer, 0, len(partners))
	var administrators []string

	for i, partner := range partners {
		n := i + 1
		address := partner.AddressText
		if normalize.IsBlank(address) {
			address = normalize.Address(partner.Address)
		}

		party := narrative.PartyOf(partner.Individual, address)
		party.MaritalStatus = normalize.Or(party.MaritalStatus, defaultFormationStatus)
		party.Profession = normalize.Or(party.Profession, defaultFormationProfession)
		clauses = append(clauses, narrative.Qualification("SÓCIO "+strconv.Itoa(n), party))

		holdings = append(holdings, narrative.Holding{Name: partner.Name, Percentage: partner.Percentage.String()})
		signers = append(signers, narrative.Signer{Name: partner.Name, CPF: partner.CPF})

		if strings.Contains(strings.ToLower(partner.Role), "administrador") {
			administrators = append(administrators, partner.Name)
		}

		setPartner(vars, n, partner.Individual, address)
		vars[partnerKey(n, "percentual")] = partner.Percentage.String()
		vars[partnerKey(n, "cargo")] = partner.Role
	}

	vars["lista_socios_qualificacao"] = narrative.JoinParties(clauses)
	vars["tabela_capital_socios"] = narrative.CapitalTable(capital, holdings)
	vars["assinaturas_socios"] = narrative.Signatures(signers, narrative.FormationSignature)

	if len(administrators) > 0 {
		vars["administradores"] = strings.Join(administrators, ", ")
	} else {
		vars["administradores"] = partners[0].Name
	}
}

// setPartner writes the identity keys shared by every document type.
func setPartner(vars Variables, n int, ind record.Individual, address string) {
	vars[partnerKey(n, "nome")] = ind.Name
	vars[partnerKey(n, "cpf")] = ind.CPF
	vars[partnerKey(n, "rg")] = ind.RG
	vars[partnerKey(n, "nacionalidade")] = normalize.Or(ind.Nationality, narrative.DefaultNationality)
	vars[partnerKey(n, "estado_civil")] = ind.MaritalStatus
	vars[partnerKey(n, "regime_comunhao")] = ind.PropertyRegime
	vars[partnerKey(n, "profissao")] = ind.Profession
	vars[partnerKey(n, "endereco_completo")] = address
}
