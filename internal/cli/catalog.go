package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// CatalogCmd groups the catalog subcommands.
type CatalogCmd struct {
	Add  CatalogAdd    `cmd:"" help:"Add a named expression."`
	List CatalogList   `cmd:"" help:"List named expressions."`
	Rm   CatalogRemove `cmd:"" help:"Remove a named expression."`
}

// CatalogAdd stores a named expression.
type CatalogAdd struct {
	Name       string `arg:"" help:"Entry name."`
	Expression string `arg:"" help:"Expression source."`
}

// Run executes the catalog add command.
func (c *CatalogAdd) Run(_ context.Context, app *App) error {
	entry, err := app.Catalog.Add(c.Name, c.Expression)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.Out, entry.ID)
	return err
}

// CatalogList prints all entries.
type CatalogList struct{}

// Run executes the catalog list command.
func (*CatalogList) Run(_ context.Context, app *App) error {
	entries, err := app.Catalog.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLEVEL\tEXPRESSION\tID")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Level, e.Source, e.ID)
	}
	return w.Flush()
}

// CatalogRemove deletes an entry.
type CatalogRemove struct {
	Name string `arg:"" help:"Entry name."`
}

// Run executes the catalog rm command.
func (c *CatalogRemove) Run(_ context.Context, app *App) error {
	return app.Catalog.Remove(c.Name)
}
