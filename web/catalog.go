package web

import (
	"net/http"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/money"
	"github.com/robinvdvleuten/contrato/normalize"
)

type CatalogResponse struct {
	Entries []catalog.Entry `json:"entries"`
}

// handleCatalog handles GET requests to /api/catalog.
// The optional scope query parameter selects company or individual entries.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries := catalog.Entries
	if name := r.URL.Query().Get("scope"); name != "" {
		scope, ok := catalog.ParseScope(name)
		if !ok {
			http.Error(w, "Unknown scope", http.StatusBadRequest)
			return
		}
		entries = catalog.InScope(scope)
	}

	writeJSONResponse(w, &CatalogResponse{Entries: entries})
}

// CompanySummary is a registry company as listed by the editor.
type CompanySummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj"`
	Capital  string `json:"capital_social"`
	Address  string `json:"address"`
	Partners int    `json:"partners"`
}

// IndividualSummary is a registry individual as listed by the editor.
type IndividualSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	Address string `json:"address"`
}

type RegistryResponse struct {
	Companies   []CompanySummary    `json:"companies"`
	Individuals []IndividualSummary `json:"individuals"`
}

// handleRegistry handles GET requests to /api/registry.
// Missing values are shown with the registry warning sentinel.
func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	reg, _ := s.snapshot()

	response := &RegistryResponse{
		Companies:   make([]CompanySummary, 0, len(reg.Companies)),
		Individuals: make([]IndividualSummary, 0, len(reg.Individuals)),
	}

	for _, c := range reg.Companies {
		response.Companies = append(response.Companies, CompanySummary{
			ID:       c.ID,
			Name:     normalize.Or(c.DisplayName(), money.NotRegistered),
			CNPJ:     normalize.Or(c.CNPJ, money.NotRegistered),
			Capital:  money.Normalize(c.Capital.String(), money.Display),
			Address:  normalize.Or(normalize.Address(c.Address), money.NotRegistered),
			Partners: len(reg.PartnersOf(c.ID)),
		})
	}
	for _, i := range reg.Individuals {
		response.Individuals = append(response.Individuals, IndividualSummary{
			ID:      i.ID,
			Name:    normalize.Or(i.Name, money.NotRegistered),
			CPF:     normalize.Or(i.CPF, money.NotRegistered),
			Address: normalize.Or(normalize.Address(i.Address), money.NotRegistered),
		})
	}

	writeJSONResponse(w, response)
}
