// Package narrative builds the prose fragments of a contract: party qualification
// clauses, signature blocks, capital tables and payment paragraphs.
//
// Builders never fail. Missing values degrade to the fallbacks legal staff expect to
// see and correct by hand ("N/A", "não informado").
package narrative

import (
	"strings"

	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
)

// PartySeparator joins consecutive qualification clauses.
const PartySeparator = " e;\n\n"

// DefaultNationality is used when a party has none registered.
const DefaultNationality = "Brasileira"

// Party is a person being qualified in a contract clause.
type Party struct {
	Name           string
	CPF            string
	RG             string
	IssuingBody    string
	Nationality    string
	MaritalStatus  string
	PropertyRegime string
	BirthDate      string
	Profession     string
	Address        string
}

// PartyOf builds a Party from a registry individual. address is the already
// normalized resident address.
func PartyOf(ind record.Individual, address string) Party {
	return Party{
		Name:           ind.Name,
		CPF:            ind.CPF,
		RG:             ind.RG,
		IssuingBody:    ind.IssuingBody,
		Nationality:    ind.Nationality,
		MaritalStatus:  ind.MaritalStatus,
		PropertyRegime: ind.PropertyRegime,
		BirthDate:      ind.BirthDate,
		Profession:     ind.Profession,
		Address:        address,
	}
}

// Married reports whether a marital status denotes a married person.
func Married(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "casado", "casada", "casado(a)":
		return true
	}
	return false
}

// CivilStatus returns the marital status, followed by the property regime when the
// party is married and a regime is registered.
func (p Party) CivilStatus() string {
	if Married(p.MaritalStatus) && !normalize.IsBlank(p.PropertyRegime) {
		return p.MaritalStatus + ", " + p.PropertyRegime
	}
	return p.MaritalStatus
}

// Qualification renders the clause that identifies a party, introduced by label
// (for example "SÓCIO 2").
func Qualification(label string, p Party) string {
	var b strings.Builder

	b.WriteString(label + " - " + normalize.Upper(p.Name) + ",")
	b.WriteString("\nnacionalidade " + normalize.Or(p.Nationality, DefaultNationality) + ",")
	b.WriteString(" " + p.CivilStatus() + ",")
	b.WriteString(" nascido em " + normalize.DateOr(p.BirthDate, "N/A") + ",")
	b.WriteString(" " + p.Profession + ",")
	b.WriteString("\ninscrito no CPF no. " + p.CPF + ",")
	b.WriteString(" Identidade no. " + p.RG + ",")
	if !normalize.IsBlank(p.IssuingBody) {
		b.WriteString(" órgão\nexpedidor " + p.IssuingBody)
	}
	b.WriteString(" residente e domiciliado no(a) " + p.Address)

	return b.String()
}

// JoinParties joins qualification clauses with the "and" separator.
func JoinParties(clauses []string) string {
	return strings.Join(clauses, PartySeparator)
}

// SaleQualification renders the clause identifying a seller or buyer. role is the
// label that opens the clause ("VENDEDORA", "COMPRADOR 2").
func SaleQualification(role string, ind record.Individual) string {
	fields := []string{
		normalize.Upper(ind.Name),
		normalize.Or(ind.Nationality, "brasileira"),
		normalize.Or(ind.MaritalStatus, "solteira"),
		"nascida em " + normalize.Or(ind.BirthDate, "data não informada"),
		normalize.Or(ind.Profession, "profissão não informada"),
		"filha de " + normalize.Or(ind.FatherName, "não informado") + " e " + normalize.Or(ind.MotherName, "não informado"),
		"portadora do RG nº " + normalize.Or(ind.RG, "não informado"),
		"inscrita no CPF sob o nº " + ind.CPF,
		"residente e domiciliada em " + strings.Join([]string{
			ind.Street, ind.Number, ind.District, ind.Municipality, ind.State,
		}, ", "),
		"CEP " + ind.PostalCode,
	}
	return role + ": " + strings.Join(fields, ", ") + "."
}
