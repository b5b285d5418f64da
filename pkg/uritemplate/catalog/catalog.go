package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/config"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/registry"
)

// Catalog validates, stores and serves named expressions.
//
// Parsed expressions are cached per name; the cache is dropped on Remove.
// A Catalog is safe for concurrent use if its Store is.
type Catalog struct {
	store    Store
	parsed   *registry.Registry[string, *uritemplate.Expression]
	exprOpts []uritemplate.Option
	logger   *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger for catalog changes.
//
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExpressionOptions sets the options passed to ParseExpression for
// every expression the catalog parses.
func WithExpressionOptions(opts ...uritemplate.Option) Option {
	return func(c *Catalog) {
		c.exprOpts = append(c.exprOpts, opts...)
	}
}

// New creates a Catalog over store.
func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:  store,
		parsed: registry.New[string, *uritemplate.Expression](),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validName reports whether name can be used as a catalog key. Names must be
// non-empty and free of whitespace and the "@" reference marker.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n@")
}

// Add parses source and stores it under name.
//
// Returns ErrInvalidName, a *uritemplate.SyntaxError for bad source, or
// ErrDuplicateName when the name is taken.
func (c *Catalog) Add(name, source string) (Entry, error) {
	if !validName(name) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	expr, err := uritemplate.ParseExpression(source, c.exprOpts...)
	if err != nil {
		return Entry{}, fmt.Errorf("add %s: %w", name, err)
	}

	entry := Entry{
		ID:      uuid.New(),
		Name:    name,
		Source:  expr.String(),
		Level:   expr.Level(),
		Created: time.Now().UTC(),
	}
	if err := c.store.Put(entry); err != nil {
		return Entry{}, fmt.Errorf("add %s: %w", name, err)
	}
	c.parsed.Register(name, expr)

	c.logger.Debug("catalog entry added",
		slog.String("name", name),
		slog.String("id", entry.ID.String()),
		slog.String("expression", entry.Source),
	)
	return entry, nil
}

// Get returns the stored entry for name.
func (c *Catalog) Get(name string) (Entry, error) {
	return c.store.Get(name)
}

// Expression returns the parsed expression stored under name.
func (c *Catalog) Expression(name string) (*uritemplate.Expression, error) {
	expr, _, err := c.parsed.LoadOrCompute(name, func() (*uritemplate.Expression, error) {
		entry, err := c.store.Get(name)
		if err != nil {
			return nil, err
		}
		return uritemplate.ParseExpression(entry.Source, c.exprOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("expression %s: %w", name, err)
	}
	return expr, nil
}

// Remove deletes the entry stored under name.
// Returns ErrNotFound if there is none.
func (c *Catalog) Remove(name string) error {
	if _, err := c.store.Get(name); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	if err := c.store.Delete(name); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	c.parsed.Delete(name)

	c.logger.Debug("catalog entry removed", slog.String("name", name))
	return nil
}

// List returns all entries ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	return c.store.List()
}

// Seed adds every entry of the "templates" map in cfg whose name is not
// already present. It returns the number of entries added. A bad template
// aborts seeding; entries added before it are kept.
//
// Example seed file:
//
//	templates:
//	  search: "{?q,lang}"
//	  user: "{/users,id}"
func (c *Catalog) Seed(cfg config.Config) (int, error) {
	templates, err := cfg.Templates()
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	added := 0
	for _, name := range names {
		_, err := c.Add(name, templates[name])
		switch {
		case errors.Is(err, ErrDuplicateName):
			c.logger.Debug("seed entry exists", slog.String("name", name))
		case err != nil:
			return added, fmt.Errorf("seed: %w", err)
		default:
			added++
		}
	}
	return added, nil
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	return c.store.Close()
}
