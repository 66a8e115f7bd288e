// Large Registry Generator
//
// This tool generates a large client registry for performance testing and profiling.
// It creates companies, individuals and partner associations with the shapes the
// back-office export produces: formatted and raw amounts, missing values and
// partial addresses.
//
// Usage:
//
//	go run main.go > registry.yaml
//	go run main.go 50000 > registry.yaml  # Specify the number of companies
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/record"
)

const (
	defaultCompanies = 5000
	maxPartners      = 4
)

var (
	firstNames = []string{
		"Ana", "Bruno", "Carla", "Daniel", "Eduarda", "Felipe", "Gabriela",
		"Henrique", "Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio",
		"Paula", "Rafael", "Sofia", "Thiago", "Vitória",
	}

	lastNames = []string{
		"Silva", "Souza", "Oliveira", "Santos", "Lima", "Pereira", "Costa",
		"Ferreira", "Almeida", "Ribeiro", "Carvalho", "Gomes", "Martins",
	}

	companyWords = []string{
		"Tecnologia", "Comércio", "Serviços", "Consultoria", "Alimentos",
		"Construtora", "Transportes", "Distribuidora", "Engenharia", "Saúde",
	}

	streets = []string{
		"Rua das Flores", "Avenida Brasil", "Rua XV de Novembro", "Avenida Paulista",
		"Rua da Aurora", "Travessa do Comércio", "Rua Sete de Setembro",
	}

	cities = []struct{ name, state string }{
		{"São Paulo", "SP"}, {"Rio de Janeiro", "RJ"}, {"Recife", "PE"},
		{"Belo Horizonte", "MG"}, {"Curitiba", "PR"}, {"Salvador", "BA"},
		{"Porto Alegre", "RS"}, {"Fortaleza", "CE"},
	}

	activities = []string{
		"6201-5/01", "4711-3/02", "5611-2/01", "7020-4/00", "4120-4/00", "4930-2/02",
	}

	regimes         = []string{"Simples Nacional", "Lucro Presumido", "Lucro Real"}
	maritalStatuses = []string{"solteiro(a)", "casado(a)", "divorciado(a)", "viúvo(a)"}
	propertyRegimes = []string{"comunhão parcial de bens", "comunhão universal de bens", "separação total de bens"}
	professions     = []string{"empresário(a)", "engenheiro(a)", "advogado(a)", "médico(a)", "comerciante"}
)

func main() {
	companies := defaultCompanies
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			companies = n
		}
	}

	reg := generate(companies)

	fmt.Println("# Large registry for performance testing")
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(reg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode registry: %v\n", err)
		os.Exit(1)
	}
	_ = enc.Close()

	fmt.Fprintf(os.Stderr, "\nGenerated %d companies, %d individuals and %d partners\n",
		len(reg.Companies), len(reg.Individuals), len(reg.Partners))
}

func generate(companies int) *record.Registry {
	reg := &record.Registry{}
	partnerID := 1

	for id := 1; id <= companies; id++ {
		company := generateCompany(id)
		reg.Companies = append(reg.Companies, company)

		n := rand.Intn(maxPartners) + 1
		for j, share := range splitShares(n) {
			person := generateIndividual(len(reg.Individuals) + 1)
			reg.Individuals = append(reg.Individuals, person)

			partner := record.Partner{
				ID:         partnerID,
				CompanyID:  id,
				Person:     person,
				Percentage: record.Amount(share),
			}
			if j == 0 {
				partner.Role = "Administrador"
			}
			reg.Partners = append(reg.Partners, partner)
			partnerID++
		}
	}

	return reg
}

func generateCompany(id int) record.Company {
	legal := fmt.Sprintf("%s %s %s LTDA",
		strings.ToUpper(lastNames[rand.Intn(len(lastNames))]),
		strings.ToUpper(companyWords[rand.Intn(len(companyWords))]),
		strings.ToUpper(companyWords[rand.Intn(len(companyWords))]),
	)

	c := record.Company{
		ID:                id,
		LegalName:         legal,
		CNPJ:              cnpj(),
		Capital:           capital(),
		PrincipalActivity: activities[rand.Intn(len(activities))],
		TaxRegime:         regimes[rand.Intn(len(regimes))],
		OpeningDate:       fmt.Sprintf("%d-%02d-%02d", 2000+rand.Intn(24), rand.Intn(12)+1, rand.Intn(28)+1),
		Email:             "contato-" + uuid.NewString()[:8] + "@example.com.br",
		Address:           address(),
	}
	// One in ten companies has no trade name registered.
	if rand.Intn(10) != 0 {
		c.TradeName = companyWords[rand.Intn(len(companyWords))] + " " + lastNames[rand.Intn(len(lastNames))]
	}
	return c
}

func generateIndividual(id int) record.Individual {
	i := record.Individual{
		ID:            id,
		Name:          firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))] + " " + lastNames[rand.Intn(len(lastNames))],
		CPF:           cpf(),
		RG:            strconv.Itoa(1000000 + rand.Intn(9000000)),
		IssuingBody:   "SSP",
		BirthDate:     fmt.Sprintf("%d-%02d-%02d", 1950+rand.Intn(50), rand.Intn(12)+1, rand.Intn(28)+1),
		MaritalStatus: maritalStatuses[rand.Intn(len(maritalStatuses))],
		Profession:    professions[rand.Intn(len(professions))],
		Nationality:   "brasileiro(a)",
		Address:       address(),
	}
	if i.MaritalStatus == "casado(a)" {
		i.PropertyRegime = propertyRegimes[rand.Intn(len(propertyRegimes))]
	}
	return i
}

// capital mixes the shapes the registry stores: raw numbers, formatted strings and
// missing values.
func capital() record.Amount {
	d := decimal.NewFromInt(int64(rand.Intn(500)+1) * 1000)
	switch rand.Intn(4) {
	case 0:
		return record.Amount(money.Format(d))
	case 1:
		return ""
	default:
		return record.Amount(d.String())
	}
}

// splitShares divides 100% between n partners, giving the rounding remainder to
// the first one.
func splitShares(n int) []string {
	total := decimal.NewFromInt(100)
	share := total.Div(decimal.NewFromInt(int64(n))).Round(2)
	first := total.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))

	shares := []string{first.StringFixed(2)}
	for i := 1; i < n; i++ {
		shares = append(shares, share.StringFixed(2))
	}
	return shares
}

func address() record.Address {
	city := cities[rand.Intn(len(cities))]
	a := record.Address{
		Street:       streets[rand.Intn(len(streets))],
		Number:       strconv.Itoa(rand.Intn(3000) + 1),
		District:     "Centro",
		Municipality: city.name,
		State:        city.state,
		PostalCode:   fmt.Sprintf("%05d-%03d", rand.Intn(100000), rand.Intn(1000)),
	}
	// Some records lack a street number, which keeps full-address insertion blocked.
	if rand.Intn(8) == 0 {
		a.Number = ""
	}
	if rand.Intn(3) == 0 {
		a.Complement = "Sala " + strconv.Itoa(rand.Intn(900)+100)
	}
	return a
}

func cnpj() string {
	return fmt.Sprintf("%02d.%03d.%03d/0001-%02d", rand.Intn(100), rand.Intn(1000), rand.Intn(1000), rand.Intn(100))
}

func cpf() string {
	return fmt.Sprintf("%03d.%03d.%03d-%02d", rand.Intn(1000), rand.Intn(1000), rand.Intn(1000), rand.Intn(100))
}
