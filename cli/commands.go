package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Configuration file." type:"path" env:"CONTRATO_CONFIG"`
	LogLevel  string `help:"Log level (debug, info, warn, error). Overrides the configuration file."`
}

type Commands struct {
	Globals

	Prepare PrepareCmd `cmd:"" help:"Print the variables prepared for a payload document."`
	Render  RenderCmd  `cmd:"" help:"Render a payload document into its template."`
	Check   CheckCmd   `cmd:"" help:"Fail when a rendered document still contains unresolved variables."`
	Catalog CatalogCmd `cmd:"" help:"List the variables free-form documents can insert."`
	Insert  InsertCmd  `cmd:"" help:"Insert a catalog variable into a free-form draft."`
	Wizard  WizardCmd  `cmd:"" help:"Build a payload document interactively."`
	Spell   SpellCmd   `cmd:"" help:"Spell out a currency value in Portuguese."`
	Doctor  DoctorCmd  `cmd:"" help:"Doctor utilities for debugging templates."`
	Web     WebCmd     `cmd:"" help:"Start the local preview server."`
}
