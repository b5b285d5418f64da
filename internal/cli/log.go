package cli

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

type logConfig struct {
	Level  string `default:"warn" enum:"debug,info,warn,error" help:"Set log level."`
	Format string `default:"text" enum:"text,json"             help:"Set log format."`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (c *logConfig) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// logger builds the invocation logger writing to w.
func (c *logConfig) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
