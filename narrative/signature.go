package narrative

import (
	"strings"

	"github.com/robinvdvleuten/contrato/normalize"
)

// SignatureStyle selects the layout of a signature block.
type SignatureStyle int

const (
	// PartnerSignature is used by dissolution documents: "CPF – 123".
	PartnerSignature SignatureStyle = iota
	// FormationSignature is used by articles of incorporation: "CPF: 123".
	FormationSignature
	// SaleSignature is used by purchase and sale contracts: "VENDEDORA: NAME".
	SaleSignature
)

const (
	partnerLine = "_____________________________________________________"
	saleLine    = "___________________________________________________________"
)

// Signer is a person signing a document.
type Signer struct {
	Name string
	CPF  string
	// Role labels sale signatures.
	Role string
}

// Signature renders one signature block.
func Signature(s Signer, style SignatureStyle) string {
	switch style {
	case FormationSignature:
		return partnerLine + "\n" + s.Name + "\nCPF: " + s.CPF
	case SaleSignature:
		return saleLine + "\n\n" + s.Role + ": " + normalize.Upper(s.Name)
	default:
		return partnerLine + "\n" + s.Name + "\nCPF – " + s.CPF
	}
}

// Signatures renders a block per signer, separated by a blank line.
func Signatures(signers []Signer, style SignatureStyle) string {
	blocks := make([]string, 0, len(signers))
	for _, s := range signers {
		blocks = append(blocks, Signature(s, style))
	}
	return strings.Join(blocks, "\n\n")
}
