package contract

import (
	"strconv"
	"strings"
	"time"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/narrative"
	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
)

const defaultNameChangeDeadline = "180"

func prepareSale(env Env, p Payload) (Variables, error) {
	s, err := payloadAs[SalePayload](env.Type, p)
	if err != nil || s == nil {
		return Variables{}, err
	}

	vars := Variables{}

	if c := s.Company; c != nil {
		// The sale deed names the company without trade name or address complement.
		address := c.Address
		address.Complement = ""

		vars["empresa_razao_social"] = c.LegalName
		vars["empresa_cnpj"] = c.CNPJ
		vars["empresa_endereco_completo"] = normalize.Address(address)
		vars["empresa_marca_antiga"] = normalize.Or(c.TradeName, c.LegalName)
		vars["cidade_contrato"] = c.Municipality
		vars["uf_contrato"] = c.State
	}

	if s.Seller != nil {
		vars["qualificacao_vendedor"] = narrative.SaleQualification("VENDEDORA", *s.Seller)
		vars["vendedor_singular_plural"] = ""
		vars["vendedor_conjugacao"] = ""
	}

	if len(s.Buyers) > 0 {
		saleBuyers(vars, s.Buyers)
	}

	total := s.Total.String()
	vars["valor_total_venda"] = normalize.Or(total, money.Zero)
	vars["valor_total_venda_extenso"] = money.WordsStub(total)

	if s.PaymentMode == PaymentLumpSum {
		vars["forma_pagamento"] = "à vista"
	} else {
		vars["forma_pagamento"] = "a prazo"
	}

	contractDate := parseDate(s.ContractDate, env.Now)

	installments := s.Installments
	if s.PaymentMode == PaymentInstallment && len(installments) == 0 && s.InstallmentCount > 0 {
		installments = money.Schedule(total, s.InstallmentCount, contractDate, s.SellerAccount)
	}

	if s.PaymentMode == PaymentInstallment && len(installments) > 0 {
		vars["detalhamento_pagamento"] = narrative.Installments(installments)
	} else {
		vars["detalhamento_pagamento"] = narrative.LumpSum(s.SellerAccount)
	}

	vars["prazo_alteracao_razao"] = normalize.Or(s.NameChangeDeadline, defaultNameChangeDeadline)
	vars["data_contrato"] = contractDate.Format(normalize.DisplayDate)

	seller := narrative.Signer{Role: "VENDEDOR"}
	if s.Seller != nil {
		seller = narrative.Signer{Role: "VENDEDORA", Name: s.Seller.Name}
	}
	vars["assinaturas_vendedores"] = narrative.Signature(seller, narrative.SaleSignature)

	return vars, nil
}

func saleBuyers(vars Variables, buyers []record.Individual) {
	several := len(buyers) > 1

	clauses := make([]string, 0, len(buyers))
	signers := make([]narrative.Signer, 0, len(buyers))

	for i, buyer := range buyers {
		role := "COMPRADOR"
		signatureRole := "COMPRADOR"
		if several {
			role += " " + strconv.Itoa(i+1)
			signatureRole = "COMPRADORA"
		}
		clauses = append(clauses, narrative.SaleQualification(role, buyer))
		signers = append(signers, narrative.Signer{Role: signatureRole, Name: buyer.Name})
	}

	vars["qualificacao_compradores"] = strings.Join(clauses, "\n\n")
	vars["assinaturas_compradores"] = narrative.Signatures(signers, narrative.SaleSignature)
	if several {
		vars["comprador_singular_plural"] = "s"
		vars["comprador_conjugacao"] = "m"
	} else {
		vars["comprador_singular_plural"] = ""
		vars["comprador_conjugacao"] = ""
	}
}

// parseDate reads an ISO date, falling back to fallback when s is blank or invalid.
func parseDate(s string, fallback time.Time) time.Time {
	if len(s) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return t
		}
	}
	return fallback
}
