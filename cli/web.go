package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/contrato/web"
)

type WebCmd struct {
	Registry  string `help:"Client registry file to serve (defaults to the configured registry)." type:"path"`
	Templates string `help:"Directory with editable templates (defaults to the built-in templates)." type:"existingdir"`
	Host      string `help:"Host to bind to (defaults to the configured host)."`
	Port      int    `help:"Port to listen on (defaults to the configured port)."`
	Watch     bool   `help:"Reload when the registry or templates change." default:"true" negatable:""`
	Create    bool   `help:"Create the registry if it doesn't exist (no confirmation prompt)." short:"c"`
	ReadOnly  bool   `help:"Reject template edits." short:"r"`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "web")
	if err != nil {
		return err
	}
	defer s.close()

	registryFile := s.registryFile(cmd.Registry)
	if registryFile != "" {
		registryFile, err = filepath.Abs(registryFile)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		if err := cmd.ensureRegistry(ctx, registryFile); err != nil {
			return err
		}
	}

	templatesDir := cmd.Templates
	if templatesDir == "" {
		templatesDir = s.cfg.Templates.Dir
	}

	host, port := s.cfg.Server.Host, s.cfg.Server.Port
	if cmd.Host != "" {
		host = cmd.Host
	}
	if cmd.Port != 0 {
		port = cmd.Port
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	opts := []web.Option{
		web.WithAddr(host, port),
		web.WithVersion(version, commitSHA),
		web.WithTemplatesDir(templatesDir),
		web.WithNoticeTTL(s.cfg.Guard.NoticeTTL),
		web.WithLogger(s.logger),
	}
	if cmd.Watch {
		opts = append(opts, web.WithWatch())
	}
	if cmd.ReadOnly {
		opts = append(opts, web.WithReadOnly())
	}
	server := web.New(registryFile, opts...)

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", host, port)
	if registryFile != "" {
		printInfof(ctx.Stdout, "Serving registry: %s", pathStyle.Render(registryFile))
	} else {
		printWarningf(ctx.Stdout, "No registry configured, drafts can only use catalog defaults")
	}
	if templatesDir != "" {
		printInfof(ctx.Stdout, "Serving templates: %s", pathStyle.Render(templatesDir))
	}
	if cmd.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	runCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(runCtx)
}

// ensureRegistry offers to create an empty registry when file does not exist.
func (cmd *WebCmd) ensureRegistry(ctx *kong.Context, file string) error {
	_, err := os.Stat(file)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	shouldCreate := cmd.Create
	if !shouldCreate {
		confirmed, err := promptYesNo(fmt.Sprintf("Registry %q does not exist. Create it?", file))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		shouldCreate = confirmed
	}
	if !shouldCreate {
		return fmt.Errorf("file does not exist: %s", file)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(file, []byte(emptyRegistry), 0o600); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	printInfof(ctx.Stdout, "Created empty registry: %s", pathStyle.Render(file))
	return nil
}

const emptyRegistry = "empresas: []\npessoas_fisicas: []\nsocios: []\n"
