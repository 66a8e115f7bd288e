package contract

import (
	"fmt"

	"github.com/robinvdvleuten/contrato/record"
)

// Payload is the form data a strategy turns into variables. Each document type
// accepts exactly one concrete payload type, as a pointer or a value.
type Payload any

// FormationPayload describes a company being incorporated.
type FormationPayload struct {
	LegalName           string             `json:"razao_social" yaml:"razao_social"`
	TradeName           string             `json:"nome_fantasia" yaml:"nome_fantasia"`
	Capital             record.Amount      `json:"capital_social" yaml:"capital_social"`
	PrincipalActivity   *record.Activity   `json:"cnae_principal,omitempty" yaml:"cnae_principal,omitempty"`
	SecondaryActivities []record.Activity  `json:"cnaes_secundarios,omitempty" yaml:"cnaes_secundarios,omitempty"`
	Partners            []FormationPartner `json:"socios,omitempty" yaml:"socios,omitempty"`

	record.Address `yaml:",inline"`
}

// FormationPartner is a founding partner.
type FormationPartner struct {
	record.Individual `yaml:",inline"`

	Percentage  record.Amount `json:"percentual_participacao" yaml:"percentual_participacao"`
	Role        string        `json:"cargo" yaml:"cargo"`
	AddressText string        `json:"endereco_completo,omitempty" yaml:"endereco_completo,omitempty"`
}

// DissolutionPayload describes the closing of a company. It serves the sole,
// individual and multi-partner dissolution types.
type DissolutionPayload struct {
	Company     *record.Company  `json:"empresa,omitempty" yaml:"empresa,omitempty"`
	Partners    []record.Partner `json:"socios,omitempty" yaml:"socios,omitempty"`
	BalanceDate string           `json:"data_balanco" yaml:"data_balanco"`
	ClosingDate string           `json:"data_encerramento" yaml:"data_encerramento"`
	Responsible string           `json:"responsavel_documentacao" yaml:"responsavel_documentacao"`
	Reason      string           `json:"motivo_extincao" yaml:"motivo_extincao"`
}

// Payment modes of a sale.
const (
	PaymentLumpSum     = "a_vista"
	PaymentInstallment = "parcelado"
)

// SalePayload describes the transfer of a company between people.
type SalePayload struct {
	Company            *record.Company      `json:"empresa,omitempty" yaml:"empresa,omitempty"`
	Seller             *record.Individual   `json:"vendedor,omitempty" yaml:"vendedor,omitempty"`
	Buyers             []record.Individual  `json:"compradores,omitempty" yaml:"compradores,omitempty"`
	Total              record.Amount        `json:"valor_total_venda" yaml:"valor_total_venda"`
	PaymentMode        string               `json:"forma_pagamento" yaml:"forma_pagamento"`
	Installments       []record.Installment `json:"parcelas,omitempty" yaml:"parcelas,omitempty"`
	InstallmentCount   int                  `json:"numero_parcelas,omitempty" yaml:"numero_parcelas,omitempty"`
	SellerAccount      record.BankAccount   `json:"dados_bancarios_vendedor" yaml:"dados_bancarios_vendedor"`
	NameChangeDeadline string               `json:"prazo_alteracao_razao" yaml:"prazo_alteracao_razao"`
	ContractDate       string               `json:"data_contrato" yaml:"data_contrato"`
}

// AmendmentPayload describes changes to an existing company's articles.
// Each section contributes only when its kind is selected in Kinds.
type AmendmentPayload struct {
	Company    *record.Company  `json:"empresa,omitempty" yaml:"empresa,omitempty"`
	Kinds      AmendmentKinds   `json:"tipos_alteracao" yaml:"tipos_alteracao"`
	Partners   *PartnerChanges  `json:"quadro_societario,omitempty" yaml:"quadro_societario,omitempty"`
	Capital    *CapitalChange   `json:"capital_social,omitempty" yaml:"capital_social,omitempty"`
	Activities *ActivityChanges `json:"quadro_atividades,omitempty" yaml:"quadro_atividades,omitempty"`
	Address    *AddressChange   `json:"endereco,omitempty" yaml:"endereco,omitempty"`
}

// AmendmentKinds selects the categories an amendment covers.
type AmendmentKinds struct {
	Partners   bool `json:"quadro_societario" yaml:"quadro_societario"`
	Capital    bool `json:"capital_social" yaml:"capital_social"`
	Activities bool `json:"quadro_atividades" yaml:"quadro_atividades"`
	Address    bool `json:"endereco" yaml:"endereco"`
}

// Partner change kinds.
const (
	AddPartner    = "adicionar"
	RemovePartner = "remover"
	ModifyPartner = "alterar"
)

// Shareholder is a partner as listed in an amendment.
type Shareholder struct {
	ID         int           `json:"id" yaml:"id"`
	Name       string        `json:"nome_completo" yaml:"nome_completo"`
	CPF        string        `json:"cpf" yaml:"cpf"`
	Percentage record.Amount `json:"percentual_participacao" yaml:"percentual_participacao"`
}

// PartnerChange adds, removes or modifies one partner. PartnerID refers to
// Current for removals and modifications.
type PartnerChange struct {
	Kind      string      `json:"tipo" yaml:"tipo"`
	PartnerID int         `json:"socio_id,omitempty" yaml:"socio_id,omitempty"`
	Partner   Shareholder `json:"dados" yaml:"dados"`
}

// PartnerChanges lists the current partners and the requested changes.
type PartnerChanges struct {
	Current []Shareholder   `json:"socios_atuais" yaml:"socios_atuais"`
	Changes []PartnerChange `json:"alteracoes" yaml:"alteracoes"`
}

// CapitalChange raises or lowers the company capital.
type CapitalChange struct {
	Current       string `json:"capital_atual" yaml:"capital_atual"`
	New           string `json:"capital_novo" yaml:"capital_novo"`
	PaymentForm   string `json:"forma_integralizacao" yaml:"forma_integralizacao"`
	Justification string `json:"justificativa" yaml:"justificativa"`
}

// ActivityChanges adds and removes economic activities.
type ActivityChanges struct {
	Current []record.Activity `json:"cnaes_atuais" yaml:"cnaes_atuais"`
	Add     []record.Activity `json:"cnaes_adicionar" yaml:"cnaes_adicionar"`
	Remove  []record.Activity `json:"cnaes_remover" yaml:"cnaes_remover"`
}

// AddressChange moves the company. The new address is embedded.
type AddressChange struct {
	Current record.Address `json:"endereco_atual" yaml:"endereco_atual"`

	record.Address `yaml:",inline"`
}

// CustomPayload is a free-form document. Company and Individual are the records
// selected to fill catalog variables; both are optional.
type CustomPayload struct {
	Title      string             `json:"titulo" yaml:"titulo"`
	Body       string             `json:"conteudo" yaml:"conteudo"`
	Company    *record.Company    `json:"empresa,omitempty" yaml:"empresa,omitempty"`
	Individual *record.Individual `json:"pessoa_fisica,omitempty" yaml:"pessoa_fisica,omitempty"`
}

// NewPayload returns a pointer to an empty payload of the type t expects, ready to
// be decoded into.
func NewPayload(t DocumentType) (Payload, error) {
	switch t {
	case Formation:
		return &FormationPayload{}, nil
	case SoleDissolution, IndividualDissolution, Distrato:
		return &DissolutionPayload{}, nil
	case PurchaseSale:
		return &SalePayload{}, nil
	case Amendment:
		return &AmendmentPayload{}, nil
	case Custom:
		return &CustomPayload{}, nil
	}
	return nil, &UnknownTypeError{Type: t}
}

// payloadAs narrows p to *T. A nil payload or typed nil pointer yields nil.
func payloadAs[T any](t DocumentType, p Payload) (*T, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case *T:
		return v, nil
	case T:
		return &v, nil
	}
	var want T
	return nil, &PayloadMismatchError{Type: t, Got: fmt.Sprintf("%T", p), Want: fmt.Sprintf("%T", want)}
}
