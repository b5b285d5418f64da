package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/catalog"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/config"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

const (
	name        = "uritemplate"
	description = "Expand and extract RFC 6570 URI template expressions."
)

// CLI is the top-level command-line interface.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	CatalogPath string `help:"SQLite catalog database; in-memory when empty." name:"catalog" placeholder:"PATH" type:"path"`
	Seed        string `help:"YAML or JSON file whose templates map is loaded into the catalog." placeholder:"FILE" type:"existingfile"`

	Expand  Expand     `cmd:"" help:"Expand an expression against variables."`
	Extract Extract    `cmd:"" help:"Extract one variable from the substring matched for it."`
	Inspect Inspect    `cmd:"" help:"Describe an expression."`
	Catalog CatalogCmd `cmd:"" help:"Manage named expressions."`
}

// App carries the per-invocation collaborators bound into commands.
type App struct {
	Logger  *slog.Logger
	Catalog *catalog.Catalog
	Out     io.Writer
}

// Resolve returns the expression for ref. A leading "@" names a catalog
// entry; anything else is parsed as expression source.
func (a *App) Resolve(ref string) (*uritemplate.Expression, error) {
	if entry, ok := strings.CutPrefix(ref, "@"); ok {
		return a.Catalog.Expression(entry)
	}
	return uritemplate.ParseExpression(ref, a.expressionOptions()...)
}

func (a *App) expressionOptions() []uritemplate.Option {
	return []uritemplate.Option{
		uritemplate.WithLogger(a.Logger),
		uritemplate.WithMetrics(observability.NewMetricsRecorder()),
		uritemplate.WithSpanManager(observability.NewSpanManager()),
	}
}

// Run executes the CLI with the given context and arguments. Command output
// goes to stdout; logs and usage go to stderr. The exit function is called
// by kong after --help and on usage errors.
func Run(ctx context.Context, stdout, stderr io.Writer, exit func(code int), args ...string) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group()}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	app, err := cli.start(stdout, stderr)
	if err != nil {
		return err
	}
	defer app.Catalog.Close()

	return ktx.Run(app)
}

// start builds the logger and opens and seeds the catalog.
func (c *CLI) start(stdout, stderr io.Writer) (*App, error) {
	logger := c.Log.logger(stderr).With(slog.String("invocation_id", uuid.NewString()))
	app := &App{Logger: logger, Out: stdout}

	var store catalog.Store = catalog.NewMemoryStore()
	if c.CatalogPath != "" {
		s, err := catalog.NewSQLiteStore(c.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		store = s
	}
	app.Catalog = catalog.New(store,
		catalog.WithLogger(logger),
		catalog.WithExpressionOptions(app.expressionOptions()...),
	)

	if c.Seed != "" {
		cfg, err := config.FromFile(c.Seed)
		if err != nil {
			app.Catalog.Close()
			return nil, err
		}
		n, err := app.Catalog.Seed(cfg)
		if err != nil {
			app.Catalog.Close()
			return nil, err
		}
		logger.Debug("catalog seeded", slog.String("file", c.Seed), slog.Int("added", n))
	}
	return app, nil
}
