// Package catalog defines the variables free-form documents can reference and the
// guard that decides whether a variable may be inserted into a draft.
//
// Every catalog key always resolves: values come from the selected company and
// individual records, and keys without a value fall back to a bracketed default
// such as "[CNPJ]" so a rendered free-form document never shows raw tokens.
package catalog

import (
	"github.com/robinvdvleuten/contrato/normalize"
	"github.com/robinvdvleuten/contrato/record"
)

// Scope identifies the record kind a catalog entry reads from.
type Scope string

const (
	CompanyScope    Scope = "company"
	IndividualScope Scope = "individual"
)

// ParseScope resolves a scope name.
func ParseScope(name string) (Scope, bool) {
	switch Scope(name) {
	case CompanyScope, IndividualScope:
		return Scope(name), true
	}
	return "", false
}

// Full-address keys. They are the only keys whose availability depends on more
// than their own value.
const (
	CompanyAddressKey    = "endereco_completo"
	IndividualAddressKey = "endereco_completo_pf"
)

// Entry is one insertable variable.
type Entry struct {
	Key     string `json:"key"`
	Scope   Scope  `json:"scope"`
	Label   string `json:"label"`
	Default string `json:"default"`
}

// Entries is the fixed catalog, company entries first, in menu order.
var Entries = []Entry{
	{Key: "razao_social", Scope: CompanyScope, Label: "Razão Social", Default: "[RAZÃO SOCIAL]"},
	{Key: "nome_fantasia", Scope: CompanyScope, Label: "Nome Fantasia", Default: "[NOME FANTASIA]"},
	{Key: "cnpj", Scope: CompanyScope, Label: "CNPJ", Default: "[CNPJ]"},
	{Key: "capital_social", Scope: CompanyScope, Label: "Capital Social", Default: "[CAPITAL SOCIAL]"},
	{Key: "cnae_principal", Scope: CompanyScope, Label: "CNAE Principal", Default: "[CNAE]"},
	{Key: "regime_tributario", Scope: CompanyScope, Label: "Regime Tributário", Default: "[REGIME TRIBUTÁRIO]"},
	{Key: "data_abertura", Scope: CompanyScope, Label: "Data de Abertura", Default: "[DATA ABERTURA]"},
	{Key: "situacao_cadastral", Scope: CompanyScope, Label: "Situação Cadastral", Default: "[SITUAÇÃO CADASTRAL]"},
	{Key: "natureza_juridica", Scope: CompanyScope, Label: "Natureza Jurídica", Default: "[NATUREZA JURÍDICA]"},
	{Key: "porte", Scope: CompanyScope, Label: "Porte da Empresa", Default: "[PORTE DA EMPRESA]"},
	{Key: "telefone1", Scope: CompanyScope, Label: "Telefone Principal", Default: "[TELEFONE PRINCIPAL]"},
	{Key: "telefone2", Scope: CompanyScope, Label: "Telefone Secundário", Default: "[TELEFONE SECUNDÁRIO]"},
	{Key: "email", Scope: CompanyScope, Label: "E-mail", Default: "[E-MAIL]"},
	{Key: CompanyAddressKey, Scope: CompanyScope, Label: "Endereço Completo", Default: "[ENDEREÇO COMPLETO]"},
	{Key: "logradouro", Scope: CompanyScope, Label: "Logradouro", Default: "[LOGRADOURO]"},
	{Key: "numero", Scope: CompanyScope, Label: "Número", Default: "[NÚMERO]"},
	{Key: "complemento", Scope: CompanyScope, Label: "Complemento", Default: "[COMPLEMENTO]"},
	{Key: "bairro", Scope: CompanyScope, Label: "Bairro", Default: "[BAIRRO]"},
	{Key: "municipio", Scope: CompanyScope, Label: "Município", Default: "[MUNICÍPIO]"},
	{Key: "uf", Scope: CompanyScope, Label: "UF", Default: "[UF]"},
	{Key: "cep", Scope: CompanyScope, Label: "CEP", Default: "[CEP]"},

	{Key: "nome_completo", Scope: IndividualScope, Label: "Nome Completo", Default: "[NOME COMPLETO]"},
	{Key: "cpf", Scope: IndividualScope, Label: "CPF", Default: "[CPF]"},
	{Key: "rg", Scope: IndividualScope, Label: "RG", Default: "[RG]"},
	{Key: "data_nascimento", Scope: IndividualScope, Label: "Data de Nascimento", Default: "[DATA NASCIMENTO]"},
	{Key: "estado_civil", Scope: IndividualScope, Label: "Estado Civil", Default: "[ESTADO CIVIL]"},
	{Key: "regime_comunhao", Scope: IndividualScope, Label: "Regime de Comunhão", Default: "[REGIME COMUNHÃO]"},
	{Key: "telefone1", Scope: IndividualScope, Label: "Telefone Principal", Default: "[TELEFONE PRINCIPAL]"},
	{Key: "telefone2", Scope: IndividualScope, Label: "Telefone Secundário", Default: "[TELEFONE SECUNDÁRIO]"},
	{Key: "email", Scope: IndividualScope, Label: "E-mail", Default: "[E-MAIL]"},
	{Key: IndividualAddressKey, Scope: IndividualScope, Label: "Endereço Completo", Default: "[ENDEREÇO COMPLETO PF]"},
	{Key: "logradouro", Scope: IndividualScope, Label: "Logradouro", Default: "[LOGRADOURO]"},
	{Key: "numero", Scope: IndividualScope, Label: "Número", Default: "[NÚMERO]"},
	{Key: "complemento", Scope: IndividualScope, Label: "Complemento", Default: "[COMPLEMENTO]"},
	{Key: "bairro", Scope: IndividualScope, Label: "Bairro", Default: "[BAIRRO]"},
	{Key: "municipio", Scope: IndividualScope, Label: "Município", Default: "[MUNICÍPIO]"},
	{Key: "uf", Scope: IndividualScope, Label: "UF", Default: "[UF]"},
	{Key: "cep", Scope: IndividualScope, Label: "CEP", Default: "[CEP]"},
}

// InScope returns the entries of one scope in menu order.
func InScope(scope Scope) []Entry {
	var entries []Entry
	for _, e := range Entries {
		if e.Scope == scope {
			entries = append(entries, e)
		}
	}
	return entries
}

// Lookup returns the entry for key within scope.
func Lookup(scope Scope, key string) (Entry, bool) {
	for _, e := range Entries {
		if e.Scope == scope && e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// CompanyValues returns the catalog values a company provides.
func CompanyValues(c *record.Company) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return map[string]string{
		"razao_social":       c.LegalName,
		"nome_fantasia":      c.TradeName,
		"cnpj":               c.CNPJ,
		"capital_social":     c.Capital.String(),
		"cnae_principal":     c.PrincipalActivity,
		"regime_tributario":  c.TaxRegime,
		"data_abertura":      c.OpeningDate,
		"situacao_cadastral": c.RegistrationStatus,
		"natureza_juridica":  c.LegalNature,
		"porte":              c.Size,
		"telefone1":          c.Phone1,
		"telefone2":          c.Phone2,
		"email":              c.Email,
		"logradouro":         c.Street,
		"numero":             c.Number,
		"complemento":        c.Complement,
		"bairro":             c.District,
		"municipio":          c.Municipality,
		"uf":                 c.State,
		"cep":                c.PostalCode,
		CompanyAddressKey:    normalize.PostalAddress(c.Address),
	}
}

// IndividualValues returns the catalog values an individual provides.
func IndividualValues(i *record.Individual) map[string]string {
	if i == nil {
		return map[string]string{}
	}
	return map[string]string{
		"nome_completo":      i.Name,
		"cpf":                i.CPF,
		"rg":                 i.RG,
		"data_nascimento":    i.BirthDate,
		"estado_civil":       i.MaritalStatus,
		"regime_comunhao":    i.PropertyRegime,
		"telefone1":          i.Phone1,
		"telefone2":          i.Phone2,
		"email":              i.Email,
		"logradouro":         i.Street,
		"numero":             i.Number,
		"complemento":        i.Complement,
		"bairro":             i.District,
		"municipio":          i.Municipality,
		"uf":                 i.State,
		"cep":                i.PostalCode,
		IndividualAddressKey: normalize.PostalAddress(i.Address),
	}
}

// Fill writes every catalog key into vars. Values of the selected company are
// written first and those of the selected individual overwrite shared keys; any
// key still empty receives its default. Either record may be nil.
func Fill(vars map[string]string, company *record.Company, individual *record.Individual) {
	if company != nil {
		for k, v := range CompanyValues(company) {
			vars[k] = v
		}
	}
	if individual != nil {
		for k, v := range IndividualValues(individual) {
			vars[k] = v
		}
	}
	for _, e := range Entries {
		if vars[e.Key] == "" {
			vars[e.Key] = e.Default
		}
	}
}
