package contract

// DocumentType identifies the kind of legal document being generated.
type DocumentType string

const (
	Formation             DocumentType = "contrato_social"
	SoleDissolution       DocumentType = "extincao_unipessoal"
	IndividualDissolution DocumentType = "extincao_individual"
	Distrato              DocumentType = "distrato"
	PurchaseSale          DocumentType = "compra_venda"
	Amendment             DocumentType = "alteracao_contratual"
	Custom                DocumentType = "contrato_custom"
)

// DocumentTypes lists every supported type in menu order.
var DocumentTypes = []DocumentType{
	Formation,
	SoleDissolution,
	IndividualDissolution,
	Distrato,
	PurchaseSale,
	Amendment,
	Custom,
}

var labels = map[DocumentType]string{
	Formation:             "Contrato Social",
	SoleDissolution:       "Extinção Unipessoal",
	IndividualDissolution: "Extinção Individual",
	Distrato:              "Distrato/Dissolução",
	PurchaseSale:          "Compra e Venda",
	Amendment:             "Alteração Contratual",
	Custom:                "Contrato Custom",
}

// ParseDocumentType resolves a wire name.
func ParseDocumentType(name string) (DocumentType, error) {
	t := DocumentType(name)
	if _, ok := labels[t]; !ok {
		return "", &UnknownTypeError{Type: t}
	}
	return t, nil
}

// Label returns the human readable name of the type.
func (t DocumentType) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// IsDissolution reports whether t is one of the dissolution kinds.
func (t DocumentType) IsDissolution() bool {
	return t == SoleDissolution || t == IndividualDissolution || t == Distrato
}

func (t DocumentType) String() string {
	return string(t)
}
