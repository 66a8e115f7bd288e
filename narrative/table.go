package narrative

import (
	"strings"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/shopspring/decimal"
)

// Holding is a partner's stake in the company capital. Percentage is kept as entered
// ("50", "33.33").
type Holding struct {
	Name       string
	Percentage string
}

func (h Holding) amount(capital decimal.Decimal) string {
	pct, _ := money.Leading(h.Percentage)
	return money.Fixed(money.Share(capital, pct))
}

// CapitalTable renders one "name | pct% | R$ amount" row per holding.
// Percentages are not required to add up to 100.
func CapitalTable(capital decimal.Decimal, holdings []Holding) string {
	rows := make([]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, h.Name+" | "+h.Percentage+"% | R$ "+h.amount(capital))
	}
	return strings.Join(rows, "\n")
}

// Distribution renders how the remaining equity is split among partners,
// one "name: pct% = R$ amount" row per holding.
func Distribution(capital decimal.Decimal, holdings []Holding) string {
	rows := make([]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, h.Name+": "+h.Percentage+"% = R$ "+h.amount(capital))
	}
	return strings.Join(rows, "\n")
}
