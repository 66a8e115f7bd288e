// Package contract prepares the variables of a legal document and renders them into
// its template.
//
// Each DocumentType is served by one Strategy that flattens a typed payload into
// Variables. Strategies are pure: they read the payload, never modify it, and always
// rebuild the dictionary from scratch, so preparing the same payload twice yields the
// same result.
//
// Example usage:
//
//	engine := contract.NewEngine()
//	vars, err := engine.Prepare(ctx, contract.PurchaseSale, &contract.SalePayload{...})
//	text := engine.Render(ctx, tmpl.Text, vars)
package contract

import (
	"context"
	"log/slog"
	"time"

	"github.com/robinvdvleuten/contrato/render"
	"github.com/robinvdvleuten/contrato/telemetry"
)

// Template is a document skeleton containing {{key}} tokens.
type Template struct {
	ID          string       `json:"id" yaml:"id"`
	Type        DocumentType `json:"document_type" yaml:"document_type"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Text        string       `json:"text" yaml:"text"`
}

// Env is what a strategy may know about the world besides its payload.
type Env struct {
	Type DocumentType
	Now  time.Time
}

// Strategy turns a payload into variables.
type Strategy func(env Env, p Payload) (Variables, error)

// Document is a rendered template.
type Document struct {
	TemplateID string       `json:"template_id"`
	Type       DocumentType `json:"document_type"`
	Variables  Variables    `json:"variables"`
	Text       string       `json:"text"`
	Unresolved []string     `json:"unresolved"`
}

// Engine dispatches payloads to their strategy.
//
// Configure the engine using functional options passed to NewEngine:
//
//	engine := NewEngine(WithClock(func() time.Time { return fixed }))
type Engine struct {
	now        func() time.Time
	strategies map[DocumentType]Strategy
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the current date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithStrategy replaces or adds the strategy for a document type.
func WithStrategy(t DocumentType, s Strategy) Option {
	return func(e *Engine) {
		e.strategies[t] = s
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine serving every built-in document type.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		strategies: map[DocumentType]Strategy{
			Formation:             prepareFormation,
			SoleDissolution:       prepareDissolution,
			IndividualDissolution: prepareDissolution,
			Distrato:              prepareDissolution,
			PurchaseSale:          prepareSale,
			Amendment:             prepareAmendment,
			Custom:                prepareCustom,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Prepare builds the variables of a document.
func (e *Engine) Prepare(ctx context.Context, t DocumentType, p Payload) (Variables, error) {
	strategy, ok := e.strategies[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}

	timer := telemetry.FromContext(ctx).Start("prepare " + string(t))
	defer timer.End()

	vars, err := strategy(Env{Type: t, Now: e.now()}, p)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "prepared variables", "type", string(t), "keys", len(vars))
	return vars, nil
}

// Render substitutes vars into text.
func (e *Engine) Render(ctx context.Context, text string, vars Variables) string {
	timer := telemetry.FromContext(ctx).Start("render")
	defer timer.End()

	return render.Render(text, vars)
}

// Compose prepares p for the template's type and renders the template. Free-form
// documents render their own body; the template text is used only while the body
// is empty.
func (e *Engine) Compose(ctx context.Context, tmpl Template, p Payload) (*Document, error) {
	vars, err := e.Prepare(ctx, tmpl.Type, p)
	if err != nil {
		return nil, err
	}

	text := tmpl.Text
	if tmpl.Type == Custom {
		if body := vars["conteudo_contrato"]; body != "" {
			text = body
		}
	}

	rendered := e.Render(ctx, text, vars)
	return &Document{
		TemplateID: tmpl.ID,
		Type:       tmpl.Type,
		Variables:  vars,
		Text:       rendered,
		Unresolved: render.Unresolved(rendered),
	}, nil
}
