package narrative

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
	"golang.org/x/exp/slices"
)

// Installments renders one paragraph per installment in ascending sequence order.
// The input is not modified.
func Installments(list []record.Installment) string {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b record.Installment) int {
		return a.Number - b.Number
	})

	paragraphs := make([]string, 0, len(sorted))
	for _, in := range sorted {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"%dª Parcela - No valor de R$ %s, tal valor deve ser depositado na Conta Bancária de titularidade do VENDEDOR perante o Banco %s, Agência %s, Conta %s até %s.",
			in.Number, in.Amount, in.Bank, in.Branch, in.Account, normalize.Date(in.DueDate),
		))
	}
	return strings.Join(paragraphs, "\n\n")
}

// LumpSum renders the single-payment sentence.
func LumpSum(account record.BankAccount) string {
	return fmt.Sprintf("Pagamento à vista na conta bancária do VENDEDOR: Banco %s, Agência %s, Conta %s.",
		account.Bank, account.Branch, account.Account)
}
