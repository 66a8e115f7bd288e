package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/logger"
	"github.com/robinvdvleuten/contrato/record"
)

// Draft is a free-form document being edited. CompanyID and IndividualID select
// the registry records its catalog variables are filled from; zero means none.
type Draft struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CompanyID    int       `json:"company_id"`
	IndividualID int       `json:"individual_id"`
	UpdatedAt    time.Time `json:"updated_at"`

	notice *catalog.Notice
}

// draftStore keeps drafts in memory.
type draftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
}

func newDraftStore() *draftStore {
	return &draftStore{drafts: make(map[uuid.UUID]*Draft)}
}

// get returns a copy of the draft with the given id.
func (d *draftStore) get(id uuid.UUID) (Draft, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	draft, ok := d.drafts[id]
	if !ok {
		return Draft{}, false
	}
	return *draft, true
}

func (d *draftStore) put(draft Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[draft.ID] = &draft
}

// update applies fn to the stored draft under the store lock.
func (d *draftStore) update(id uuid.UUID, fn func(*Draft)) (Draft, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	draft, ok := d.drafts[id]
	if !ok {
		return Draft{}, false
	}
	fn(draft)
	return *draft, true
}

func (d *draftStore) delete(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.drafts[id]; !ok {
		return false
	}
	delete(d.drafts, id)
	return true
}

// DraftRequest creates or updates a draft.
type DraftRequest struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	CompanyID    int    `json:"company_id"`
	IndividualID int    `json:"individual_id"`
}

// DraftResponse is a draft with its rendered preview and any notice still visible.
type DraftResponse struct {
	Draft    Draft              `json:"draft"`
	Document *contract.Document `json:"document"`
	Notice   *catalog.Notice    `json:"notice,omitempty"`
	Inserted bool               `json:"inserted"`
}

func (s *Server) draftID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid draft id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// records resolves the registry records selected by a draft.
func (s *Server) records(draft Draft) (*record.Company, *record.Individual) {
	reg, _ := s.snapshot()
	company, _ := reg.Company(draft.CompanyID)
	individual, _ := reg.Individual(draft.IndividualID)
	return company, individual
}

// respondDraft renders the draft body and writes the response.
func (s *Server) respondDraft(ctx context.Context, w http.ResponseWriter, status int, draft Draft, inserted bool) {
	company, individual := s.records(draft)

	tmpl := contract.Template{Type: contract.Custom}
	if _, lib := s.snapshot(); lib != nil {
		if t, ok := lib.Default(contract.Custom); ok {
			tmpl = t
		}
	}

	doc, err := s.engine.Compose(ctx, tmpl, &contract.CustomPayload{
		Title:      draft.Title,
		Body:       draft.Body,
		Company:    company,
		Individual: individual,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := &DraftResponse{Draft: draft, Document: doc, Inserted: inserted}
	if !draft.notice.Expired(s.now()) {
		response.Notice = draft.notice
	}
	writeJSON(w, status, response)
}

// handleCreateDraft handles POST requests to /api/drafts.
func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var request DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	draft := Draft{
		ID:           uuid.New(),
		Title:        request.Title,
		Body:         request.Body,
		CompanyID:    request.CompanyID,
		IndividualID: request.IndividualID,
		UpdatedAt:    s.now(),
	}
	s.drafts.put(draft)

	ctx := context.WithValue(r.Context(), logger.DraftKey, draft.ID.String())
	logger.Annotate(s.logger, ctx).Info("draft created")

	w.Header().Set("Location", "/api/drafts/"+draft.ID.String())
	s.respondDraft(ctx, w, http.StatusCreated, draft, false)
}

// handleGetDraft handles GET requests to /api/drafts/{id}.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := s.draftID(w, r)
	if !ok {
		return
	}

	draft, ok := s.drafts.get(id)
	if !ok {
		http.Error(w, "Draft not found", http.StatusNotFound)
		return
	}
	s.respondDraft(r.Context(), w, http.StatusOK, draft, false)
}

// handlePutDraft handles PUT requests to /api/drafts/{id}.
// Editing a draft replaces its title, body and record selection.
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := s.draftID(w, r)
	if !ok {
		return
	}

	var request DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	draft, ok := s.drafts.update(id, func(d *Draft) {
		d.Title = request.Title
		d.Body = request.Body
		d.CompanyID = request.CompanyID
		d.IndividualID = request.IndividualID
		d.UpdatedAt = s.now()
	})
	if !ok {
		http.Error(w, "Draft not found", http.StatusNotFound)
		return
	}
	s.respondDraft(r.Context(), w, http.StatusOK, draft, false)
}

// handleDeleteDraft handles DELETE requests to /api/drafts/{id}.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := s.draftID(w, r)
	if !ok {
		return
	}
	if !s.drafts.delete(id) {
		http.Error(w, "Draft not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InsertRequest asks for a catalog variable to be appended to a draft body.
type InsertRequest struct {
	Key   string        `json:"key"`
	Scope catalog.Scope `json:"scope"`
}

// handleInsert handles POST requests to /api/drafts/{id}/insert.
// An unavailable variable leaves the body unchanged and attaches a notice that
// expires after the guard's TTL.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.draftID(w, r)
	if !ok {
		return
	}

	var request InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, ok := catalog.Lookup(request.Scope, request.Key); !ok {
		http.Error(w, "Unknown catalog variable", http.StatusBadRequest)
		return
	}

	current, ok := s.drafts.get(id)
	if !ok {
		http.Error(w, "Draft not found", http.StatusNotFound)
		return
	}

	company, individual := s.records(current)
	var src *catalog.Source
	if request.Scope == catalog.CompanyScope {
		src = catalog.CompanySource(company)
	} else {
		src = catalog.IndividualSource(individual)
	}

	var inserted bool
	draft, ok := s.drafts.update(id, func(d *Draft) {
		ins := s.guard.Insert(d.Body, src, request.Key)
		d.Body = ins.Body
		d.notice = ins.Notice
		d.UpdatedAt = s.now()
		inserted = ins.Inserted
	})
	if !ok {
		http.Error(w, "Draft not found", http.StatusNotFound)
		return
	}

	ctx := context.WithValue(r.Context(), logger.DraftKey, id.String())
	logger.Annotate(s.logger, ctx).Debug("variable insert", "key", request.Key, "inserted", inserted)

	s.respondDraft(ctx, w, http.StatusOK, draft, inserted)
}
