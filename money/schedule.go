package money

import (
	"time"

	"github.com/robinvdvleuten/contrato/record"
	"github.com/shopspring/decimal"
)

// Schedule splits total into count equal installments, one calendar month apart
// starting at start. Every installment carries the same bank account.
// A count below one yields no installments.
func Schedule(total string, count int, start time.Time, account record.BankAccount) []record.Installment {
	if count < 1 {
		return nil
	}

	value, _ := Parse(total)
	amount := Fixed(value.Div(decimal.NewFromInt(int64(count))))

	installments := make([]record.Installment, 0, count)
	for i := 0; i < count; i++ {
		installments = append(installments, record.Installment{
			Number:      i + 1,
			Amount:      amount,
			DueDate:     start.AddDate(0, i, 0).Format(time.DateOnly),
			BankAccount: account,
		})
	}
	return installments
}
