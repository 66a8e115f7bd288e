package contract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/record"
	"github.com/robinvdvleuten/contrato/render"
	"gopkg.in/yaml.v3"
)

var fixedNow = time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return fixedNow }))
}

func TestParseDocumentType(t *testing.T) {
	for _, dt := range DocumentTypes {
		got, err := ParseDocumentType(string(dt))
		assert.NoError(t, err)
		assert.Equal(t, dt, got)
		assert.NotEqual(t, string(dt), dt.Label())
	}

	_, err := ParseDocumentType("entrada_socio")
	var unknown *UnknownTypeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, DocumentType("entrada_socio"), unknown.GetType())
}

func TestEveryTypeHasAStrategy(t *testing.T) {
	engine := newTestEngine()
	for _, dt := range DocumentTypes {
		_, ok := engine.strategies[dt]
		assert.True(t, ok, "missing strategy for %s", dt)

		p, err := NewPayload(dt)
		assert.NoError(t, err)
		_, err = engine.Prepare(context.Background(), dt, p)
		assert.NoError(t, err)
	}
}

func TestPrepareUnknownType(t *testing.T) {
	_, err := newTestEngine().Prepare(context.Background(), "entrada_socio", nil)
	var unknown *UnknownTypeError
	assert.True(t, errors.As(err, &unknown))
}

func TestPreparePayloadMismatch(t *testing.T) {
	_, err := newTestEngine().Prepare(context.Background(), PurchaseSale, &FormationPayload{})
	var mismatch *PayloadMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, PurchaseSale, mismatch.GetType())
	assert.Contains(t, err.Error(), "*contract.FormationPayload")
}

func TestPrepareNilPayload(t *testing.T) {
	engine := newTestEngine()
	for _, dt := range []DocumentType{Formation, Distrato, PurchaseSale, Amendment} {
		vars, err := engine.Prepare(context.Background(), dt, nil)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(vars), "type %s", dt)
	}

	var typedNil *SalePayload
	vars, err := engine.Prepare(context.Background(), PurchaseSale, typedNil)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(vars))
}

func TestPrepareAcceptsValuePayload(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Formation, FormationPayload{LegalName: "ACME"})
	assert.NoError(t, err)
	assert.Equal(t, "ACME", vars["empresa_razao_social"])
}

func TestWithStrategy(t *testing.T) {
	engine := NewEngine(WithStrategy(Custom, func(env Env, p Payload) (Variables, error) {
		return Variables{"tipo": string(env.Type)}, nil
	}))

	vars, err := engine.Prepare(context.Background(), Custom, nil)
	assert.NoError(t, err)
	assert.Equal(t, Variables{"tipo": "contrato_custom"}, vars)
}

// Entity formation, two partners at 50% each on a capital of 10000.00.
func TestFormationScenario(t *testing.T) {
	payload := &FormationPayload{
		LegalName: "NOVA EMPRESA LTDA",
		TradeName: "Nova",
		Capital:   "10000.00",
		PrincipalActivity: &record.Activity{
			Code:        "6920-6/01",
			Description: "Atividades de contabilidade",
			Activities:  []string{"contabilidade", "auditoria"},
		},
		SecondaryActivities: []record.Activity{
			{Code: "7020-4/00", Description: "Consultoria", Activities: []string{"consultoria em gestão"}},
		},
		Address: record.Address{Street: "Rua A", Number: "10", Municipality: "Recife", State: "PE", PostalCode: "50000-000"},
		Partners: []FormationPartner{
			{
				Individual: record.Individual{Name: "Ana Souza", CPF: "111", RG: "11"},
				Percentage: "50",
				Role:       "Sócia Administradora",
			},
			{
				Individual: record.Individual{
					Name: "Bruno Lima", CPF: "222", RG: "22", MaritalStatus: "casado", PropertyRegime: "comunhão parcial",
					Address: record.Address{Street: "Rua B", Number: "5", Municipality: "Olinda", State: "PE"},
				},
				Percentage: "50",
				Role:       "Sócio",
			},
		},
	}

	vars, err := newTestEngine().Prepare(context.Background(), Formation, payload)
	assert.NoError(t, err)

	assert.Equal(t, "Ana Souza | 50% | R$ 5000.00\nBruno Lima | 50% | R$ 5000.00", vars["tabela_capital_socios"])
	assert.Equal(t, "1000000", vars["empresa_numero_quotas"])
	assert.Equal(t, "1,00", vars["empresa_valor_quota"])
	assert.Equal(t, "10000.00", vars["empresa_capital_social"])
	assert.Equal(t, "6920-6/01 - Atividades de contabilidade", vars["empresa_cnae_principal"])
	assert.Equal(t, "contabilidade; auditoria; consultoria em gestão", vars["empresa_objeto_social"])
	assert.Equal(t, "6920-6/01 - Atividades de contabilidade\n7020-4/00 - Consultoria", vars["empresa_cnaes"])
	assert.Equal(t, "Rua A, 10, Recife, PE, CEP 50000-000", vars["empresa_endereco_completo"])
	assert.Equal(t, "Ana Souza", vars["administradores"])
	assert.Equal(t, "2024-05-20", vars["data_atual"])
	assert.Equal(t, "2024-05-20", vars["empresa_data_abertura"])
	assert.Equal(t, "Dinheiro", vars["forma_integralizacao"])
	assert.Equal(t, "Rua B, 5, Olinda, PE", vars["socio_2_endereco_completo"])
	assert.Equal(t, "Brasileira", vars["socio_1_nacionalidade"])
	assert.Equal(t, "Sócio", vars["socio_2_cargo"])

	clauses := strings.Split(vars["lista_socios_qualificacao"], " e;\n\n")
	assert.Equal(t, 2, len(clauses))
	assert.Contains(t, clauses[0], "SÓCIO 1 - ANA SOUZA,")
	assert.Contains(t, clauses[0], " solteiro(a), nascido em N/A, Profissional,")
	assert.Contains(t, clauses[1], " casado, comunhão parcial,")

	assert.Contains(t, vars["assinaturas_socios"], "Bruno Lima\nCPF: 222")
}

func TestFormationWithoutPartners(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Formation, &FormationPayload{
		LegalName:         "SOLO LTDA",
		PrincipalActivity: &record.Activity{Code: "1", Description: "Comércio"},
	})
	assert.NoError(t, err)

	assert.Equal(t, "Comércio", vars["empresa_objeto_social"])
	assert.Equal(t, "000", vars["empresa_numero_quotas"])
	_, ok := vars["lista_socios_qualificacao"]
	assert.False(t, ok)
	_, ok = vars["socio_1_nome"]
	assert.False(t, ok)
}

func TestFormationAdministratorFallback(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Formation, &FormationPayload{
		Partners: []FormationPartner{
			{Individual: record.Individual{Name: "Carla"}, Role: "Sócia"},
			{Individual: record.Individual{Name: "Davi"}, Role: "ADMINISTRADOR"},
			{Individual: record.Individual{Name: "Eva"}, Role: "administradora"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Davi, Eva", vars["administradores"])

	vars, err = newTestEngine().Prepare(context.Background(), Formation, &FormationPayload{
		Partners: []FormationPartner{{Individual: record.Individual{Name: "Carla"}}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Carla", vars["administradores"])
}

func dissolutionPayload() *DissolutionPayload {
	return &DissolutionPayload{
		Company: &record.Company{
			LegalName:   "ANTIGA LTDA",
			CNPJ:        "12.345.678/0001-90",
			Capital:     "10.000,00",
			LegalNature: "206-2",
			OpeningDate: "2015-03-01",
			Address:     record.Address{Street: "Rua C", Number: "30", Municipality: "Recife", State: "PE"},
		},
		Partners: []record.Partner{
			{
				Person:      record.Individual{Name: "Ana", CPF: "111", IssuingBody: "SSP/PE"},
				Percentage:  "60",
				AddressText: "Av. Boa Viagem, 100, Recife, PE",
			},
			{
				Person:     record.Individual{Name: "Bruno", CPF: "222"},
				Percentage: "40",
			},
		},
		BalanceDate: "2024-04-30",
	}
}

// Multi-partner dissolution with a capital already formatted as "10.000,00".
func TestDistratoScenario(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Distrato, dissolutionPayload())
	assert.NoError(t, err)

	assert.Equal(t, "10.000,00", vars["valor_liquidacao"])
	assert.Equal(t, "10.000,00", vars["valor_ativo"])
	assert.Equal(t, "10.000,00", vars["valor_patrimonio_liquido"])
	assert.Equal(t, "10.000,00", vars["empresa_capital_social"])
	assert.Equal(t, "0,00", vars["valor_passivo"])
	assert.Equal(t, "206-2", vars["empresa_nire"])
	assert.Equal(t, "Não interesse na continuidade da empresa", vars["motivo_extincao"])
	assert.Equal(t, "Ana", vars["responsavel_documentacao"])
	assert.Equal(t, "2024-04-30", vars["data_balanco"])

	assert.Equal(t, "Av. Boa Viagem, 100, Recife, PE", vars["socio_1_endereco_completo"])
	assert.Equal(t, "Rua C, 30, Recife, PE", vars["socio_2_endereco_completo"])
	assert.Equal(t, "Ana: 60% = R$ 6000.00\nBruno: 40% = R$ 4000.00", vars["distribuicao_patrimonio"])

	assert.Contains(t, vars["lista_socios_qualificacao"], " órgão\nexpedidor SSP/PE residente e domiciliado no(a) Av. Boa Viagem")
	assert.Contains(t, vars["assinaturas_socios"], "Bruno\nCPF – 222")
}

func TestDissolutionSinglePartner(t *testing.T) {
	payload := dissolutionPayload()
	payload.Partners = payload.Partners[:1]
	payload.Company.Capital = "5000"
	payload.Reason = DissolutionReasons[1]
	payload.Responsible = "Contador Responsável"

	vars, err := newTestEngine().Prepare(context.Background(), SoleDissolution, payload)
	assert.NoError(t, err)

	assert.Equal(t, "5.000,00", vars["valor_liquidacao"])
	assert.Equal(t, "Incorporação", vars["motivo_extincao"])
	assert.Equal(t, "Contador Responsável", vars["responsavel_documentacao"])
	_, ok := vars["distribuicao_patrimonio"]
	assert.False(t, ok)
}

// Registry exports that write capital as a decimal number keep its value.
func TestDissolutionNumericCapital(t *testing.T) {
	sources := map[string]func(*record.Company) error{
		"json": func(c *record.Company) error {
			return json.Unmarshal([]byte(`{"razao_social": "ACME", "capital_social": 10000.00}`), c)
		},
		"yaml": func(c *record.Company) error {
			return yaml.Unmarshal([]byte("razao_social: ACME\ncapital_social: 10000.00\n"), c)
		},
	}

	for name, decodeCompany := range sources {
		t.Run(name, func(t *testing.T) {
			var company record.Company
			assert.NoError(t, decodeCompany(&company))

			payload := dissolutionPayload()
			payload.Company = &company
			payload.Partners[0].Percentage = "50"
			payload.Partners[1].Percentage = "50"

			vars, err := newTestEngine().Prepare(context.Background(), Distrato, payload)
			assert.NoError(t, err)
			assert.Equal(t, "10.000,00", vars["valor_liquidacao"])
			assert.Equal(t, "10.000,00", vars["empresa_capital_social"])
			assert.Equal(t, "Ana: 50% = R$ 5000.00\nBruno: 50% = R$ 5000.00", vars["distribuicao_patrimonio"])
		})
	}
}

func TestDissolutionMissingCapital(t *testing.T) {
	payload := dissolutionPayload()
	payload.Company.Capital = "null"

	vars, err := newTestEngine().Prepare(context.Background(), IndividualDissolution, payload)
	assert.NoError(t, err)
	assert.Equal(t, "0,00", vars["valor_liquidacao"])
}

func TestPartnerAddressFallback(t *testing.T) {
	tests := []struct {
		name    string
		partner record.Partner
		want    string
	}{
		{
			name:    "pre-joined text",
			partner: record.Partner{AddressText: "Texto", Address: &record.Address{Street: "Rua X"}},
			want:    "Texto",
		},
		{
			name:    "association address",
			partner: record.Partner{Address: &record.Address{Street: "Rua X", Number: "1"}},
			want:    "Rua X, 1",
		},
		{
			name:    "person address",
			partner: record.Partner{Person: record.Individual{Address: record.Address{Street: "Rua Y", State: "SP"}}},
			want:    "Rua Y, SP",
		},
		{
			name: "company address",
			want: "Empresa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, partnerAddress(tt.partner, "Empresa"))
		})
	}
}

// Purchase and sale paid in three monthly installments.
func TestSaleScenario(t *testing.T) {
	account := record.BankAccount{Bank: "Banco do Brasil", Branch: "1234", Account: "56789-0"}
	payload := &SalePayload{
		Company: &record.Company{LegalName: "VENDIDA LTDA", CNPJ: "1"},
		Seller:  &record.Individual{Name: "Maria Lima", CPF: "333"},
		Buyers: []record.Individual{
			{Name: "João Silva", CPF: "444"},
		},
		Total:            "15000,00",
		PaymentMode:      PaymentInstallment,
		InstallmentCount: 3,
		SellerAccount:    account,
		ContractDate:     "2024-01-10",
	}

	vars, err := newTestEngine().Prepare(context.Background(), PurchaseSale, payload)
	assert.NoError(t, err)

	paragraphs := strings.Split(vars["detalhamento_pagamento"], "\n\n")
	assert.Equal(t, 3, len(paragraphs))
	assert.Contains(t, paragraphs[0], "1ª Parcela - No valor de R$ 5000.00")
	assert.Contains(t, paragraphs[0], "até 10/01/2024.")
	assert.Contains(t, paragraphs[1], "até 10/02/2024.")
	assert.Contains(t, paragraphs[2], "até 10/03/2024.")
	assert.Contains(t, paragraphs[2], "Banco Banco do Brasil, Agência 1234, Conta 56789-0")

	assert.Equal(t, "a prazo", vars["forma_pagamento"])
	assert.Equal(t, "15000,00", vars["valor_total_venda"])
	assert.Equal(t, "15000,00 reais", vars["valor_total_venda_extenso"])
	assert.Equal(t, "10/01/2024", vars["data_contrato"])
	assert.Equal(t, "180", vars["prazo_alteracao_razao"])
	assert.Equal(t, "VENDIDA LTDA", vars["empresa_marca_antiga"])
	assert.True(t, strings.HasPrefix(vars["qualificacao_vendedor"], "VENDEDORA: MARIA LIMA,"))
	assert.True(t, strings.HasPrefix(vars["qualificacao_compradores"], "COMPRADOR: JOÃO SILVA,"))
	assert.Equal(t, "", vars["comprador_singular_plural"])
	assert.Equal(t, strings.Repeat("_", 59)+"\n\nVENDEDORA: MARIA LIMA", vars["assinaturas_vendedores"])
	assert.Equal(t, strings.Repeat("_", 59)+"\n\nCOMPRADOR: JOÃO SILVA", vars["assinaturas_compradores"])
}

func TestSaleCompanyIdentification(t *testing.T) {
	payload := &SalePayload{
		Company: &record.Company{
			LegalName: "VENDIDA LTDA",
			TradeName: "Vendida",
			CNPJ:      "1",
			Address: record.Address{
				Street: "Rua A", Number: "10", Complement: "Sala 3", District: "Centro",
				Municipality: "Recife", State: "PE", PostalCode: "50000-000",
			},
		},
		PaymentMode: PaymentLumpSum,
	}

	vars, err := newTestEngine().Prepare(context.Background(), PurchaseSale, payload)
	assert.NoError(t, err)
	assert.Equal(t, "Rua A, 10, Centro, Recife, PE, CEP 50000-000", vars["empresa_endereco_completo"])
	assert.Equal(t, "Vendida", vars["empresa_marca_antiga"])
	assert.Equal(t, "Recife", vars["cidade_contrato"])
	_, ok := vars["empresa_nome_fantasia"]
	assert.False(t, ok)
}

func TestSaleExplicitInstallmentsAreSorted(t *testing.T) {
	payload := &SalePayload{
		PaymentMode: PaymentInstallment,
		Installments: []record.Installment{
			{Number: 2, Amount: "100.00", DueDate: "2024-02-01"},
			{Number: 1, Amount: "100.00", DueDate: "2024-01-01"},
		},
		InstallmentCount: 5,
	}

	vars, err := newTestEngine().Prepare(context.Background(), PurchaseSale, payload)
	assert.NoError(t, err)

	paragraphs := strings.Split(vars["detalhamento_pagamento"], "\n\n")
	assert.Equal(t, 2, len(paragraphs))
	assert.True(t, strings.HasPrefix(paragraphs[0], "1ª Parcela"))
	assert.Equal(t, 2, payload.Installments[0].Number)
}

func TestSaleLumpSumDefaults(t *testing.T) {
	payload := &SalePayload{
		PaymentMode:   PaymentLumpSum,
		SellerAccount: record.BankAccount{Bank: "Itaú", Branch: "1", Account: "2"},
		Buyers:        []record.Individual{{Name: "A"}, {Name: "B"}},
	}

	vars, err := newTestEngine().Prepare(context.Background(), PurchaseSale, payload)
	assert.NoError(t, err)

	assert.Equal(t, "à vista", vars["forma_pagamento"])
	assert.Equal(t, "Pagamento à vista na conta bancária do VENDEDOR: Banco Itaú, Agência 1, Conta 2.", vars["detalhamento_pagamento"])
	assert.Equal(t, "0,00", vars["valor_total_venda"])
	assert.Equal(t, "zero reais", vars["valor_total_venda_extenso"])
	assert.Equal(t, "20/05/2024", vars["data_contrato"])
	assert.Equal(t, "s", vars["comprador_singular_plural"])
	assert.Equal(t, "m", vars["comprador_conjugacao"])
	assert.Equal(t, strings.Repeat("_", 59)+"\n\nVENDEDOR: ", vars["assinaturas_vendedores"])

	clauses := strings.Split(vars["qualificacao_compradores"], "\n\n")
	assert.Equal(t, 2, len(clauses))
	assert.True(t, strings.HasPrefix(clauses[1], "COMPRADOR 2: B,"))
	_, ok := vars["qualificacao_vendedor"]
	assert.False(t, ok)
}

func TestAmendment(t *testing.T) {
	payload := &AmendmentPayload{
		Company: &record.Company{LegalName: "ALTERADA LTDA", Address: record.Address{Municipality: "Recife", State: "PE"}},
		Kinds:   AmendmentKinds{Partners: true, Activities: true, Address: true},
		Partners: &PartnerChanges{
			Current: []Shareholder{
				{ID: 1, Name: "Ana", CPF: "111", Percentage: "50"},
				{ID: 2, Name: "Bruno", CPF: "222", Percentage: "50"},
			},
			Changes: []PartnerChange{
				{Kind: AddPartner, Partner: Shareholder{Name: "Carla", CPF: "333", Percentage: "20"}},
				{Kind: RemovePartner, PartnerID: 2},
				{Kind: ModifyPartner, PartnerID: 1, Partner: Shareholder{Percentage: "80"}},
				{Kind: RemovePartner, PartnerID: 99},
			},
		},
		Capital: &CapitalChange{New: "20.000,00"},
		Activities: &ActivityChanges{
			Current: []record.Activity{{Code: "A1"}, {Code: "A2"}},
			Add:     []record.Activity{{Code: "B1", Description: "Nova atividade"}},
			Remove:  []record.Activity{{Code: "A2"}},
		},
		Address: &AddressChange{
			Current: record.Address{Street: "Rua Velha", Number: "1"},
			Address: record.Address{Street: "Rua Nova", Number: "2", Municipality: "Recife", State: "PE"},
		},
	}

	vars, err := newTestEngine().Prepare(context.Background(), Amendment, payload)
	assert.NoError(t, err)

	assert.Equal(t, "Mudança de Quadro Societário, Alteração no Quadro de Atividades, Alteração de Endereço", vars["tipos_alteracao_lista"])
	assert.Equal(t, "Ana (CPF: 111, Participação: 50%); Bruno (CPF: 222, Participação: 50%)", vars["socios_atuais"])
	assert.Equal(t, "1) Adicionar sócio: Carla (CPF: 333, Participação: 20%)\n"+
		"2) Remover sócio: Bruno\n"+
		"3) Alterar participação de Ana para 80%\n"+
		"4) Remover sócio: N/A", vars["alteracoes_quadro_societario"])
	assert.Equal(t, "A1, A2", vars["cnaes_atuais"])
	assert.Equal(t, "B1 - Nova atividade", vars["cnaes_adicionar"])
	assert.Equal(t, "A2", vars["cnaes_remover"])
	assert.Equal(t, "Rua Velha, 1", vars["endereco_atual"])
	assert.Equal(t, "Rua Nova, 2, Recife, PE", vars["endereco_novo"])
	assert.Equal(t, "Recife, PE", vars["empresa_endereco_completo"])

	// Capital was provided but not selected.
	_, ok := vars["capital_social_novo"]
	assert.False(t, ok)
}

func TestAmendmentCapitalDefaults(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Amendment, &AmendmentPayload{
		Kinds:   AmendmentKinds{Capital: true},
		Capital: &CapitalChange{Justification: "aumento"},
	})
	assert.NoError(t, err)

	assert.Equal(t, "0,00", vars["capital_social_atual"])
	assert.Equal(t, "0,00", vars["capital_social_novo"])
	assert.Equal(t, "dinheiro", vars["forma_integralizacao"])
	assert.Equal(t, "aumento", vars["justificativa_capital"])
	assert.Equal(t, "Alteração no Capital Social", vars["tipos_alteracao_lista"])
}

// Free-form document with no record selected.
func TestCustomScenario(t *testing.T) {
	engine := newTestEngine()
	body := "Eu, {{nome_completo}}, CPF {{cpf}}, represento {{razao_social}} ({{cnpj}}) em {{data_atual}}."

	doc, err := engine.Compose(context.Background(), Template{ID: "livre", Type: Custom}, &CustomPayload{Body: body})
	assert.NoError(t, err)

	for _, e := range catalog.Entries {
		_, ok := doc.Variables[e.Key]
		assert.True(t, ok, "missing %s", e.Key)
	}
	assert.Equal(t, "[CNPJ]", doc.Variables["cnpj"])
	assert.Equal(t, "Contrato Custom", doc.Variables["titulo_contrato"])
	assert.Equal(t, "Eu, [NOME COMPLETO], CPF [CPF], represento [RAZÃO SOCIAL] ([CNPJ]) em 2024-05-20.", doc.Text)
	assert.Equal(t, 0, len(doc.Unresolved))
	assert.Equal(t, 0, len(render.Tokens(doc.Text)))
}

func TestCustomNilPayloadIsComplete(t *testing.T) {
	vars, err := newTestEngine().Prepare(context.Background(), Custom, nil)
	assert.NoError(t, err)
	for _, e := range catalog.Entries {
		assert.NotEqual(t, "", vars[e.Key])
	}
}

func TestCustomUsesTemplateWhileBodyIsEmpty(t *testing.T) {
	doc, err := newTestEngine().Compose(context.Background(),
		Template{ID: "seed", Type: Custom, Text: "Título: {{titulo_contrato}}"},
		&CustomPayload{Title: "Declaração"})
	assert.NoError(t, err)
	assert.Equal(t, "Título: Declaração", doc.Text)
}

func TestComposeLeavesUnknownTokens(t *testing.T) {
	tmpl := Template{ID: "venda", Type: PurchaseSale, Text: "{{empresa_razao_social}} / {{socio_9_nome}}"}

	doc, err := newTestEngine().Compose(context.Background(), tmpl, &SalePayload{Company: &record.Company{LegalName: "X LTDA"}})
	assert.NoError(t, err)
	assert.Equal(t, "X LTDA / {{socio_9_nome}}", doc.Text)
	assert.Equal(t, []string{"socio_9_nome"}, doc.Unresolved)
	assert.Equal(t, "venda", doc.TemplateID)
}

func TestPrepareIsDeterministic(t *testing.T) {
	engine := newTestEngine()
	payload := dissolutionPayload()

	first, err := engine.Prepare(context.Background(), Distrato, payload)
	assert.NoError(t, err)
	second, err := engine.Prepare(context.Background(), Distrato, payload)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, dissolutionPayload(), payload)
}

func TestVariablesKeys(t *testing.T) {
	vars := Variables{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, vars.Keys())

	clone := vars.Clone()
	clone.Merge(Variables{"a": "x", "d": "4"})
	assert.Equal(t, "1", vars["a"])
	assert.Equal(t, "x", clone["a"])
	assert.Equal(t, 4, len(clone))
}
