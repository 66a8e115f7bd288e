package contract

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
)

const defaultAmendmentPaymentForm = "dinheiro"

func prepareAmendment(env Env, p Payload) (Variables, error) {
	a, err := payloadAs[AmendmentPayload](env.Type, p)
	if err != nil || a == nil {
		return Variables{}, err
	}

	vars := Variables{
		"data_atual": normalize.ISO(env.Now),
	}
	if a.Company != nil {
		companyVars(vars, a.Company)
	}

	var kinds []string
	if a.Kinds.Partners {
		kinds = append(kinds, "Mudança de Quadro Societário")
	}
	if a.Kinds.Capital {
		kinds = append(kinds, "Alteração no Capital Social")
	}
	if a.Kinds.Activities {
		kinds = append(kinds, "Alteração no Quadro de Atividades")
	}
	if a.Kinds.Address {
		kinds = append(kinds, "Alteração de Endereço")
	}
	vars["tipos_alteracao_lista"] = strings.Join(kinds, ", ")

	if a.Kinds.Partners && a.Partners != nil {
		partnerChangeVars(vars, a.Partners)
	}

	if a.Kinds.Capital && a.Capital != nil {
		vars["capital_social_atual"] = normalize.Or(a.Capital.Current, money.Zero)
		vars["capital_social_novo"] = normalize.Or(a.Capital.New, money.Zero)
		vars["forma_integralizacao"] = normalize.Or(a.Capital.PaymentForm, defaultAmendmentPaymentForm)
		vars["justificativa_capital"] = a.Capital.Justification
	}

	if a.Kinds.Activities && a.Activities != nil {
		if len(a.Activities.Current) > 0 {
			vars["cnaes_atuais"] = activityCodes(a.Activities.Current)
		}
		if len(a.Activities.Add) > 0 {
			lines := make([]string, 0, len(a.Activities.Add))
			for _, act := range a.Activities.Add {
				lines = append(lines, act.Label())
			}
			vars["cnaes_adicionar"] = strings.Join(lines, "\n")
		}
		if len(a.Activities.Remove) > 0 {
			vars["cnaes_remover"] = activityCodes(a.Activities.Remove)
		}
	}

	if a.Kinds.Address && a.Address != nil {
		vars["endereco_atual"] = normalize.Address(a.Address.Current)
		vars["endereco_novo"] = normalize.Address(a.Address.Address)
	}

	return vars, nil
}

func partnerChangeVars(vars Variables, qs *PartnerChanges) {
	if len(qs.Current) > 0 {
		entries := make([]string, 0, len(qs.Current))
		for _, s := range qs.Current {
			entries = append(entries, s.describe())
		}
		vars["socios_atuais"] = strings.Join(entries, "; ")
	}

	var lines []string
	for _, change := range qs.Changes {
		var line string
		switch change.Kind {
		case AddPartner:
			line = "Adicionar sócio: " + change.Partner.describe()
		case RemovePartner:
			line = "Remover sócio: " + qs.nameOf(change.PartnerID)
		case ModifyPartner:
			line = fmt.Sprintf("Alterar participação de %s para %s%%", qs.nameOf(change.PartnerID), change.Partner.Percentage)
		default:
			continue
		}
		lines = append(lines, fmt.Sprintf("%d) %s", len(lines)+1, line))
	}
	if len(lines) > 0 {
		vars["alteracoes_quadro_societario"] = strings.Join(lines, "\n")
	}
}

func (s Shareholder) describe() string {
	return fmt.Sprintf("%s (CPF: %s, Participação: %s%%)", s.Name, s.CPF, s.Percentage)
}

// nameOf returns the name of a current partner, or "N/A" when id is unknown.
func (qs *PartnerChanges) nameOf(id int) string {
	for _, s := range qs.Current {
		if s.ID == id {
			return normalize.Or(s.Name, "N/A")
		}
	}
	return "N/A"
}

func activityCodes(list []record.Activity) string {
	codes := make([]string, 0, len(list))
	for _, a := range list {
		codes = append(codes, a.Code)
	}
	return strings.Join(codes, ", ")
}
