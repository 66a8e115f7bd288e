// Package loader reads the files the contract engine works from: payload documents,
// client registries and template libraries.
//
// Payload and registry files may be written in YAML or JSON; the format is chosen by
// file extension (.json is JSON, anything else YAML). Registries can be split over
// several files with an includes list.
//
// Example usage:
//
//	// Load a single registry file, keeping its includes list untouched
//	ldr := loader.New()
//	result, err := ldr.LoadRegistry(ctx, "registry.yaml")
//
//	// Load a registry and every file it includes
//	ldr := loader.New(loader.WithFollowIncludes())
//	result, err := ldr.LoadRegistry(ctx, "registry.yaml")
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/contrato/record"
	"github.com/robinvdvleuten/contrato/telemetry"
	"gopkg.in/yaml.v3"
)

// Loader loads payload documents, registries and templates.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFollowIncludes(), WithTemplatesDir("templates"))
type Loader struct {
	// FollowIncludes determines whether registry includes are loaded and merged.
	// When false, only the named registry file is read and Registry.Includes is preserved.
	FollowIncludes bool

	// TemplatesDir is the directory templates are read from. When empty the
	// built-in templates are used.
	TemplatesDir string
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes configures the loader to recursively load and merge every
// registry file listed in includes. Relative paths are resolved from the directory
// of the including file and a file included twice is read once.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// WithTemplatesDir configures the directory templates are loaded from.
func WithTemplatesDir(dir string) Option {
	return func(l *Loader) {
		l.TemplatesDir = dir
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// RegistryResult is a loaded registry and the files it was assembled from.
type RegistryResult struct {
	Registry *record.Registry

	// Root is the absolute path of the file passed to LoadRegistry.
	Root string

	// Includes are the absolute paths of every included file, in load order.
	Includes []string
}

// Files returns the root followed by every included file.
func (r *RegistryResult) Files() []string {
	return append([]string{r.Root}, r.Includes...)
}

// LoadRegistry reads a registry file.
func (l *Loader) LoadRegistry(ctx context.Context, filename string) (*RegistryResult, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filepath.Base(filename))
	defer timer.End()

	root, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	if !l.FollowIncludes {
		reg, err := readRegistry(root)
		if err != nil {
			return nil, err
		}
		return &RegistryResult{Registry: reg, Root: root}, nil
	}

	state := &loaderState{visited: make(map[string]bool)}
	reg, err := state.loadRecursive(ctx, root)
	if err != nil {
		return nil, err
	}

	return &RegistryResult{Registry: reg, Root: root, Includes: state.includes}, nil
}

// loaderState tracks state during recursive loading.
type loaderState struct {
	visited  map[string]bool
	includes []string
}

func (l *loaderState) loadRecursive(ctx context.Context, path string) (*record.Registry, error) {
	if l.visited[path] {
		return &record.Registry{}, nil
	}
	l.visited[path] = true

	reg, err := readRegistry(path)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	includes := reg.Includes
	reg.Includes = nil

	for _, inc := range includes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		includePath := inc
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, includePath)
		}
		includePath = filepath.Clean(includePath)

		if !l.visited[includePath] {
			l.includes = append(l.includes, includePath)
		}

		included, err := l.loadRecursive(ctx, includePath)
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", path, err)
		}
		reg.Merge(included)
	}

	return reg, nil
}

func readRegistry(filename string) (*record.Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var reg record.Registry
	if err := decode(filename, data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// decode unmarshals data into v using the format implied by filename.
func decode(filename string, data []byte, v any) error {
	var err error
	if isJSON(filename) {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return &DecodeError{Filename: filename, Err: err}
	}
	return nil
}

func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}
