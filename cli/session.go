package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/config"
	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/logger"
	"github.com/robinvdvleuten/contrato/output"
	"github.com/robinvdvleuten/contrato/telemetry"
)

// session carries what every command needs: configuration, logger and the
// telemetry collector rooted at the command's own timer.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	stderr io.Writer

	collector telemetry.Collector
	root      telemetry.Timer
	once      sync.Once
}

func newSession(kctx *kong.Context, globals *Globals, name string) (*session, error) {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}
	if globals.LogLevel != "" {
		cfg.Log.Level = globals.LogLevel
	}

	s := &session{
		ctx:    context.Background(),
		cfg:    cfg,
		logger: logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}),
		stderr: kctx.Stderr,
	}

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		s.ctx = telemetry.WithCollector(s.ctx, collector)
		s.collector = collector
		s.root = collector.Start(name)
	}

	return s, nil
}

// close reports telemetry once.
func (s *session) close() {
	s.once.Do(func() {
		if s.collector == nil {
			return
		}
		s.root.End()
		_, _ = fmt.Fprintln(s.stderr)
		s.collector.Report(s.stderr, output.NewStyles(s.stderr))
	})
}

// loader returns a loader reading templates from dir, or from the configured
// directory when dir is empty.
func (s *session) loader(dir string, opts ...loader.Option) *loader.Loader {
	if dir == "" {
		dir = s.cfg.Templates.Dir
	}
	return loader.New(append([]loader.Option{loader.WithTemplatesDir(dir)}, opts...)...)
}

// registryFile returns file, or the configured registry when file is empty.
func (s *session) registryFile(file string) string {
	if file != "" {
		return file
	}
	return s.cfg.Registry.File
}

func (s *session) engine() *contract.Engine {
	return contract.NewEngine(contract.WithLogger(s.logger))
}

// document reads and parses a payload file.
func (s *session) document(f *FileOrStdin) (*loader.Document, []byte, error) {
	data, err := f.Read()
	if err != nil {
		return nil, nil, err
	}

	timer := telemetry.FromContext(s.ctx).Start("parse " + f.Filename)
	defer timer.End()

	doc, err := loader.ParseDocument(f.Name(), data)
	return doc, data, err
}

// template resolves the template a document renders into: an explicit file, then
// an explicit id, then the document's own template id, then the type's default.
func (s *session) template(doc *loader.Document, file, id, dir string) (contract.Template, error) {
	ldr := s.loader(dir)
	if file != "" {
		return ldr.LoadTemplateFile(s.ctx, file, doc.Type)
	}

	lib, err := ldr.LoadTemplates(s.ctx)
	if err != nil {
		return contract.Template{}, err
	}
	if id == "" {
		id = doc.TemplateID
	}
	return lib.Resolve(id, doc.Type)
}
