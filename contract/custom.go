package contract

import (
	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/normalize"
)

// DefaultCustomTitle is the title of an untitled free-form document.
const DefaultCustomTitle = "Contrato Custom"

func prepareCustom(env Env, p Payload) (Variables, error) {
	c, err := payloadAs[CustomPayload](env.Type, p)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &CustomPayload{}
	}

	vars := Variables{
		"data_atual":        normalize.ISO(env.Now),
		"titulo_contrato":   normalize.Or(c.Title, DefaultCustomTitle),
		"conteudo_contrato": c.Body,
	}
	catalog.Fill(vars, c.Company, c.Individual)

	return vars, nil
}
