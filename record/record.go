// Package record defines the source records consumed by the contract engine.
//
// Records are owned by external collaborators (client registry, partner registry,
// activity lookup) and arrive fully resident in memory. The engine only reads them.
// Field tags follow the wire names used by the back-office registry so payloads
// exported from it decode without translation.
package record

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a currency or percentage value in whatever shape the registry stored it:
// a raw number (10000.5), a pre-formatted string ("10.000,50") or nothing at all.
// Strings are kept verbatim so each call site can decide how to normalize them.
// Numbers are stored in their shortest form (10000.00 becomes 10000) so a later
// Brazilian parse never reads their decimal point as a thousands separator.
type Amount string

// numericAmount returns the shortest decimal form of a numeric literal, or the
// literal itself when it is not a plain decimal.
func numericAmount(literal string) Amount {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return Amount(literal)
	}
	return Amount(d.String())
}

// UnmarshalJSON accepts JSON strings, numbers and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = numericAmount(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar, treating null as empty.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*a = ""
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if value.Tag == "!!int" || value.Tag == "!!float" {
		*a = numericAmount(s)
		return nil
	}
	*a = Amount(s)
	return nil
}

// String returns the raw value.
func (a Amount) String() string {
	return string(a)
}

// Address is a postal address split in its registry components.
type Address struct {
	Street       string `json:"logradouro" yaml:"logradouro"`
	Number       string `json:"numero" yaml:"numero"`
	Complement   string `json:"complemento" yaml:"complemento"`
	District     string `json:"bairro" yaml:"bairro"`
	Municipality string `json:"municipio" yaml:"municipio"`
	State        string `json:"uf" yaml:"uf"`
	PostalCode   string `json:"cep" yaml:"cep"`
}

// IsZero reports whether no component carries text.
func (a Address) IsZero() bool {
	for _, part := range []string{a.Street, a.Number, a.Complement, a.District, a.Municipality, a.State, a.PostalCode} {
		if strings.TrimSpace(part) != "" {
			return false
		}
	}
	return true
}

// BankAccount identifies the account receiving a payment.
type BankAccount struct {
	Bank    string `json:"banco" yaml:"banco"`
	Branch  string `json:"agencia" yaml:"agencia"`
	Account string `json:"conta" yaml:"conta"`
}

// Activity is an economic-activity classification (CNAE) lookup result.
type Activity struct {
	Code        string   `json:"codigo" yaml:"codigo"`
	Description string   `json:"descricao" yaml:"descricao"`
	Activities  []string `json:"lista_atividades" yaml:"lista_atividades"`
}

// Label returns "code - description".
func (a Activity) Label() string {
	return a.Code + " - " + a.Description
}

// Company is a legal entity (PJ) from the client registry.
type Company struct {
	ID                  int      `json:"id" yaml:"id"`
	LegalName           string   `json:"razao_social" yaml:"razao_social"`
	TradeName           string   `json:"nome_fantasia" yaml:"nome_fantasia"`
	CNPJ                string   `json:"cnpj" yaml:"cnpj"`
	Capital             Amount   `json:"capital_social" yaml:"capital_social"`
	PrincipalActivity   string   `json:"cnae_principal" yaml:"cnae_principal"`
	SecondaryActivities []string `json:"cnae_secundarias" yaml:"cnae_secundarias"`
	TaxRegime           string   `json:"regime_tributario" yaml:"regime_tributario"`
	OpeningDate         string   `json:"data_abertura" yaml:"data_abertura"`
	RegistrationStatus  string   `json:"situacao_cadastral" yaml:"situacao_cadastral"`
	LegalNature         string   `json:"natureza_juridica" yaml:"natureza_juridica"`
	Size                string   `json:"porte" yaml:"porte"`
	Phone1              string   `json:"telefone1" yaml:"telefone1"`
	Phone2              string   `json:"telefone2" yaml:"telefone2"`
	Email               string   `json:"email" yaml:"email"`

	Address `yaml:",inline"`
}

// DisplayName returns the legal name, falling back to the trade name.
func (c *Company) DisplayName() string {
	if c.LegalName != "" {
		return c.LegalName
	}
	return c.TradeName
}

// Individual is a natural person (PF) from the client registry.
type Individual struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"nome_completo" yaml:"nome_completo"`
	CPF            string `json:"cpf" yaml:"cpf"`
	RG             string `json:"rg" yaml:"rg"`
	IssuingBody    string `json:"orgao_expedidor" yaml:"orgao_expedidor"`
	BirthDate      string `json:"data_nascimento" yaml:"data_nascimento"`
	MaritalStatus  string `json:"estado_civil" yaml:"estado_civil"`
	PropertyRegime string `json:"regime_comunhao" yaml:"regime_comunhao"`
	Profession     string `json:"profissao" yaml:"profissao"`
	Nationality    string `json:"nacionalidade" yaml:"nacionalidade"`
	FatherName     string `json:"nome_pai" yaml:"nome_pai"`
	MotherName     string `json:"nome_mae" yaml:"nome_mae"`
	Phone1         string `json:"telefone1" yaml:"telefone1"`
	Phone2         string `json:"telefone2" yaml:"telefone2"`
	Email          string `json:"email" yaml:"email"`

	Address `yaml:",inline"`
}

// Partner links an individual to a company.
//
// AddressText is a pre-joined address kept by the partner registry; Address is an
// override entered for the association. Both are optional.
type Partner struct {
	ID          int        `json:"id" yaml:"id"`
	CompanyID   int        `json:"cliente_id" yaml:"cliente_id"`
	Person      Individual `json:"pessoa" yaml:"pessoa"`
	Percentage  Amount     `json:"percentual_participacao" yaml:"percentual_participacao"`
	Role        string     `json:"cargo" yaml:"cargo"`
	Address     *Address   `json:"endereco,omitempty" yaml:"endereco,omitempty"`
	AddressText string     `json:"endereco_completo,omitempty" yaml:"endereco_completo,omitempty"`
}

// Installment is one entry of a payment schedule.
type Installment struct {
	Number  int    `json:"numero" yaml:"numero"`
	Amount  string `json:"valor" yaml:"valor"`
	DueDate string `json:"data_vencimento" yaml:"data_vencimento"`

	BankAccount `yaml:",inline"`
}
