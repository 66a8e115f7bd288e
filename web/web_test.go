package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/telemetry"
)

const testRegistry = `
empresas:
  - id: 1
    razao_social: ACME LTDA
    cnpj: 12.345.678/0001-90
    capital_social: 10000
    logradouro: Rua das Flores
    numero: "10"
    municipio: Recife
    uf: PE
  - id: 2
    nome_fantasia: Beta
pessoas_fisicas:
  - id: 10
    nome_completo: Ana Souza
    cpf: 111.222.333-44
socios:
  - id: 100
    cliente_id: 1
    pessoa:
      nome_completo: Ana Souza
    percentual_participacao: 100
`

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *testClock) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "registry.yaml")
	assert.NoError(t, os.WriteFile(file, []byte(testRegistry), 0o644))

	clock := &testClock{now: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)}
	s := New(file, append([]Option{WithClock(clock.Now)}, opts...)...)
	assert.NoError(t, s.Load(context.Background()))
	return s, clock
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t, WithVersion("1.2.3", "abc"))

	rec := do(t, s.Handler(), http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Header().Get("X-Request-ID"))

	got := decodeBody[VersionResponse](t, rec)
	assert.Equal(t, VersionResponse{Version: "1.2.3", CommitSHA: "abc"}, got)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestListTemplates(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	t.Run("All", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/templates", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[TemplatesResponse](t, rec)
		assert.Equal(t, len(contract.DocumentTypes), len(got.Templates))
		assert.False(t, got.Editable)
		for _, tmpl := range got.Templates {
			assert.NotZero(t, tmpl.TypeLabel)
		}
	})

	t.Run("FilterByType", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/templates?type=compra_venda", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[TemplatesResponse](t, rec)
		assert.Equal(t, 1, len(got.Templates))
		assert.Equal(t, "compra_venda_padrao", got.Templates[0].ID)
		assert.NotEqual(t, 0, len(got.Templates[0].Tokens))
	})

	t.Run("UnknownType", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/templates?type=nope", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Get", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/templates/contrato_custom_padrao", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[contract.Template](t, rec)
		assert.Equal(t, contract.Custom, got.Type)
		assert.NotZero(t, got.Text)
	})

	t.Run("GetMissing", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/templates/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPutTemplate(t *testing.T) {
	tmpl := contract.Template{Type: contract.Custom, Name: "Recibo", Text: "Recebi de {{razao_social}}."}

	t.Run("BuiltinTemplatesAreReadOnly", func(t *testing.T) {
		s, _ := newTestServer(t)
		rec := do(t, s.Handler(), http.MethodPut, "/api/templates/recibo", tmpl)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ReadOnly", func(t *testing.T) {
		s, _ := newTestServer(t, WithTemplatesDir(t.TempDir()), WithReadOnly())
		rec := do(t, s.Handler(), http.MethodPut, "/api/templates/recibo", tmpl)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Writable", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := newTestServer(t, WithTemplatesDir(dir))
		h := s.Handler()

		rec := do(t, h, http.MethodPut, "/api/templates/recibo", tmpl)
		assert.Equal(t, http.StatusOK, rec.Code)

		data, err := os.ReadFile(filepath.Join(dir, "recibo.yaml"))
		assert.NoError(t, err)
		assert.Contains(t, string(data), "id: recibo")
		assert.Contains(t, string(data), "document_type: contrato_custom")

		rec = do(t, h, http.MethodGet, "/api/templates/recibo", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[contract.Template](t, rec)
		assert.Equal(t, "Recebi de {{razao_social}}.", got.Text)

		rec = do(t, h, http.MethodGet, "/api/templates", nil)
		assert.True(t, decodeBody[TemplatesResponse](t, rec).Editable)
	})

	t.Run("InvalidType", func(t *testing.T) {
		s, _ := newTestServer(t, WithTemplatesDir(t.TempDir()))
		rec := do(t, s.Handler(), http.MethodPut, "/api/templates/recibo", contract.Template{Type: "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTemplatePath(t *testing.T) {
	dir := t.TempDir()
	s := New("", WithTemplatesDir(dir))

	path, err := s.templatePath("recibo")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "recibo.yaml"), path)

	for _, id := range []string{"", "../escape", "a/b", `a\b`, ".."} {
		_, err := s.templatePath(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestCatalog(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/catalog?scope=individual", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[CatalogResponse](t, rec)
	assert.NotEqual(t, 0, len(got.Entries))
	for _, e := range got.Entries {
		assert.Equal(t, "individual", string(e.Scope))
	}

	rec = do(t, h, http.MethodGet, "/api/catalog", nil)
	all := decodeBody[CatalogResponse](t, rec)
	assert.True(t, len(all.Entries) > len(got.Entries))

	rec = do(t, h, http.MethodGet, "/api/catalog?scope=other", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistry(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/api/registry", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[RegistryResponse](t, rec)
	assert.Equal(t, 2, len(got.Companies))
	assert.Equal(t, CompanySummary{
		ID:       1,
		Name:     "ACME LTDA",
		CNPJ:     "12.345.678/0001-90",
		Capital:  "10.000,00",
		Address:  got.Companies[0].Address,
		Partners: 1,
	}, got.Companies[0])
	assert.Contains(t, got.Companies[0].Address, "Rua das Flores")

	beta := got.Companies[1]
	assert.Equal(t, "Beta", beta.Name)
	assert.Equal(t, "Não cadastrado", beta.CNPJ)
	assert.Equal(t, "Não cadastrado", beta.Capital)
	assert.Equal(t, 0, beta.Partners)

	assert.Equal(t, 1, len(got.Individuals))
	assert.Equal(t, "111.222.333-44", got.Individuals[0].CPF)
}

func TestEmptyRegistry(t *testing.T) {
	s := New("")
	assert.NoError(t, s.Load(context.Background()))

	rec := do(t, s.Handler(), http.MethodGet, "/api/registry", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[RegistryResponse](t, rec)
	assert.Equal(t, 0, len(got.Companies))
}

func TestPreview(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	sale := map[string]any{
		"empresa":           map[string]any{"razao_social": "VENDIDA LTDA", "cnpj": "1"},
		"vendedor":          map[string]any{"nome_completo": "Maria Lima", "cpf": "333"},
		"compradores":       []any{map[string]any{"nome_completo": "João Silva", "cpf": "444"}},
		"valor_total_venda": "15000,00",
		"forma_pagamento":   "parcelado",
		"numero_parcelas":   3,
		"data_contrato":     "2024-01-10",
	}

	t.Run("Sale", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{
			"document_type": "compra_venda",
			"payload":       sale,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Server-Timing"), `desc="prepare compra_venda"`)
		assert.Contains(t, rec.Header().Get("Server-Timing"), `desc="render"`)

		doc := decodeBody[contract.Document](t, rec)
		assert.Equal(t, "compra_venda_padrao", doc.TemplateID)
		assert.Equal(t, "a prazo", doc.Variables["forma_pagamento"])
		assert.Equal(t, "10/01/2024", doc.Variables["data_contrato"])
		assert.Contains(t, doc.Text, "VENDIDA LTDA")
	})

	t.Run("InlineText", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{
			"document_type": "compra_venda",
			"text":          "Total: {{valor_total_venda}} {{desconhecida}}",
			"payload":       sale,
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		doc := decodeBody[contract.Document](t, rec)
		assert.Equal(t, "Total: 15000,00 {{desconhecida}}", doc.Text)
		assert.Equal(t, []string{"desconhecida"}, doc.Unresolved)
	})

	t.Run("UnknownType", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{"document_type": "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		got := decodeBody[ErrorJSON](t, rec)
		assert.Equal(t, `unknown document type "nope"`, got.Message)
		assert.Equal(t, "nope", got.Details["document_type"])
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{
			"document_type": "compra_venda",
			"template_id":   "missing",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		got := decodeBody[ErrorJSON](t, rec)
		assert.Equal(t, "*loader.UnknownTemplateError", got.Type)
		assert.Equal(t, "missing", got.Details["template_id"])
	})

	t.Run("TemplateOfAnotherType", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{
			"document_type": "compra_venda",
			"template_id":   "contrato_custom_padrao",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/preview", map[string]any{
			"document_type": "compra_venda",
			"payload":       []int{1},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDrafts(t *testing.T) {
	s, clock := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/drafts", DraftRequest{Title: "Procuração", Body: "Outorgante: ", CompanyID: 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[DraftResponse](t, rec)
	assert.Equal(t, "/api/drafts/"+created.Draft.ID.String(), rec.Header().Get("Location"))
	assert.Equal(t, "Procuração", created.Document.Variables["titulo_contrato"])
	assert.Equal(t, "ACME LTDA", created.Document.Variables["razao_social"])
	assert.Equal(t, "[NOME COMPLETO]", created.Document.Variables["nome_completo"])

	path := "/api/drafts/" + created.Draft.ID.String()

	t.Run("InsertAvailable", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, path+"/insert", InsertRequest{Key: "cnpj", Scope: "company"})
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[DraftResponse](t, rec)
		assert.True(t, got.Inserted)
		assert.Zero(t, got.Notice)
		assert.Equal(t, "Outorgante: {{cnpj}}", got.Draft.Body)
		assert.Equal(t, "Outorgante: 12.345.678/0001-90", got.Document.Text)
	})

	t.Run("InsertMissing", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, path+"/insert", InsertRequest{Key: "email", Scope: "company"})
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[DraftResponse](t, rec)
		assert.False(t, got.Inserted)
		assert.True(t, got.Notice != nil)
		assert.Equal(t, "email", got.Notice.Key)
		assert.Equal(t, "Outorgante: {{cnpj}}", got.Draft.Body)

		rec = do(t, h, http.MethodGet, path, nil)
		assert.True(t, decodeBody[DraftResponse](t, rec).Notice != nil)

		clock.now = clock.now.Add(6 * time.Second)
		rec = do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, decodeBody[DraftResponse](t, rec).Notice)
	})

	t.Run("InsertWithoutIndividual", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, path+"/insert", InsertRequest{Key: "cpf", Scope: "individual"})
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[DraftResponse](t, rec)
		assert.False(t, got.Inserted)
		assert.Zero(t, got.Notice)
	})

	t.Run("InsertUnknownKey", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, path+"/insert", InsertRequest{Key: "nao_existe", Scope: "company"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Update", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, path, DraftRequest{Body: "{{nome_completo}}", IndividualID: 10})
		assert.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[DraftResponse](t, rec)
		assert.Equal(t, "Ana Souza", got.Document.Text)
		assert.Equal(t, contract.DefaultCustomTitle, got.Document.Variables["titulo_contrato"])
		assert.Equal(t, "[RAZÃO SOCIAL]", got.Document.Variables["razao_social"])
	})

	t.Run("Delete", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, h, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/drafts/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEditorPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/drafts")
}

func TestHandleFileChange(t *testing.T) {
	s, _ := newTestServer(t)

	events := make(chan string, 1)
	s.sseMu.Lock()
	s.sseClients[events] = struct{}{}
	s.sseMu.Unlock()

	updated := strings.Replace(testRegistry, "ACME LTDA", "ACME S.A.", 1)
	assert.NoError(t, os.WriteFile(s.RegistryFile, []byte(updated), 0o644))

	assert.NoError(t, s.reloadRegistry(context.Background()))
	s.broadcast("reload")

	assert.Equal(t, "reload", <-events)
	reg, _ := s.snapshot()
	c, ok := reg.Company(1)
	assert.True(t, ok)
	assert.Equal(t, "ACME S.A.", c.LegalName)
}

func TestServerTiming(t *testing.T) {
	got := serverTiming([]telemetry.Span{
		{Name: "prepare distrato", Duration: 1500 * time.Microsecond},
		{Name: "render", Depth: 1, Duration: 250 * time.Microsecond},
	})
	assert.Equal(t, `s0;desc="prepare distrato";dur=1.500, s1;desc="render";dur=0.250`, got)
	assert.Equal(t, "", serverTiming(nil))
}

func TestErrorJSON(t *testing.T) {
	got := errorJSON(&loader.TemplateTypeError{ID: "x", Got: contract.Custom, Want: contract.Distrato})
	assert.Equal(t, "*loader.TemplateTypeError", got.Type)
	assert.Equal(t, map[string]any{"template_id": "x", "document_type": "contrato_custom"}, got.Details)

	plain := errorJSON(errors.New("boom"))
	assert.Equal(t, ErrorJSON{Type: "*errors.errorString", Message: "boom"}, plain)
}
