package loader

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/telemetry"
	"golang.org/x/exp/slices"
)

//go:embed templates/*.yaml
var builtin embed.FS

// Library is an immutable set of templates.
type Library struct {
	templates []contract.Template
	byID      map[string]int
}

// NewLibrary indexes templates by ID. Templates are sorted by document type menu
// order, then by ID.
func NewLibrary(templates []contract.Template) (*Library, error) {
	sorted := slices.Clone(templates)
	slices.SortStableFunc(sorted, func(a, b contract.Template) int {
		if ai, bi := typeIndex(a.Type), typeIndex(b.Type); ai != bi {
			return ai - bi
		}
		return strings.Compare(a.ID, b.ID)
	})

	lib := &Library{templates: sorted, byID: make(map[string]int, len(sorted))}
	for i, t := range sorted {
		if _, err := contract.ParseDocumentType(string(t.Type)); err != nil {
			return nil, &TemplateTypeError{ID: t.ID, Got: t.Type}
		}
		if _, ok := lib.byID[t.ID]; ok {
			return nil, &DuplicateTemplateError{ID: t.ID, Filename: t.ID}
		}
		lib.byID[t.ID] = i
	}
	return lib, nil
}

func typeIndex(t contract.DocumentType) int {
	if i := slices.Index(contract.DocumentTypes, t); i >= 0 {
		return i
	}
	return len(contract.DocumentTypes)
}

// All returns every template.
func (l *Library) All() []contract.Template {
	return slices.Clone(l.templates)
}

// Len returns the number of templates.
func (l *Library) Len() int {
	return len(l.templates)
}

// Get returns the template with the given ID.
func (l *Library) Get(id string) (contract.Template, bool) {
	i, ok := l.byID[id]
	if !ok {
		return contract.Template{}, false
	}
	return l.templates[i], true
}

// Default returns the first template of a document type.
func (l *Library) Default(t contract.DocumentType) (contract.Template, bool) {
	for _, tmpl := range l.templates {
		if tmpl.Type == t {
			return tmpl, true
		}
	}
	return contract.Template{}, false
}

// Resolve returns the template with the given ID, or the default template of t when
// id is empty. A template of another type is an error.
func (l *Library) Resolve(id string, t contract.DocumentType) (contract.Template, error) {
	if id == "" {
		tmpl, ok := l.Default(t)
		if !ok {
			return contract.Template{}, &UnknownTemplateError{Type: t}
		}
		return tmpl, nil
	}

	tmpl, ok := l.Get(id)
	if !ok {
		return contract.Template{}, &UnknownTemplateError{ID: id}
	}
	if t != "" && tmpl.Type != t {
		return contract.Template{}, &TemplateTypeError{ID: id, Got: tmpl.Type, Want: t}
	}
	return tmpl, nil
}

// LoadTemplates reads every .yaml, .yml and .json template in the templates
// directory, or the built-in templates when no directory is configured. A template
// without an ID takes its file name.
func (l *Loader) LoadTemplates(ctx context.Context) (*Library, error) {
	timer := telemetry.FromContext(ctx).Start("load templates")
	defer timer.End()

	if l.TemplatesDir == "" {
		sub, err := fs.Sub(builtin, "templates")
		if err != nil {
			return nil, err
		}
		return loadTemplatesFS(ctx, sub, "")
	}

	return loadTemplatesFS(ctx, os.DirFS(l.TemplatesDir), l.TemplatesDir)
}

func loadTemplatesFS(ctx context.Context, fsys fs.FS, label string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates %s: %w", label, err)
	}

	var templates []contract.Template
	seen := map[string]string{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml" && ext != ".json") {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		filename := name
		if label != "" {
			filename = path.Join(label, name)
		}

		var tmpl contract.Template
		if err := decode(filename, data, &tmpl); err != nil {
			return nil, err
		}
		if tmpl.ID == "" {
			tmpl.ID = strings.TrimSuffix(name, path.Ext(name))
		}
		if _, err := contract.ParseDocumentType(string(tmpl.Type)); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, &TemplateTypeError{ID: tmpl.ID, Got: tmpl.Type})
		}
		if _, ok := seen[tmpl.ID]; ok {
			return nil, &DuplicateTemplateError{ID: tmpl.ID, Filename: filename}
		}
		seen[tmpl.ID] = filename

		templates = append(templates, tmpl)
	}

	return NewLibrary(templates)
}

// LoadTemplateFile reads a single template. YAML and JSON files are decoded as
// templates; any other file is taken as raw template text for documents of type t.
// A decoded template without a type is given t.
func (l *Loader) LoadTemplateFile(ctx context.Context, filename string, t contract.DocumentType) (contract.Template, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filepath.Base(filename))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if err != nil {
		return contract.Template{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	base := filepath.Base(filename)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml", ".json":
	default:
		return contract.Template{ID: id, Type: t, Name: id, Text: string(data)}, nil
	}

	var tmpl contract.Template
	if err := decode(filename, data, &tmpl); err != nil {
		return contract.Template{}, err
	}
	if tmpl.ID == "" {
		tmpl.ID = id
	}
	if tmpl.Type == "" {
		tmpl.Type = t
	}
	if t != "" && tmpl.Type != t {
		return contract.Template{}, &TemplateTypeError{ID: tmpl.ID, Got: tmpl.Type, Want: t}
	}
	return tmpl, nil
}
