package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/puffless/internal/export"
	"github.com/julianstephens/puffless/internal/logger"
)

type ExportCmd struct {
	Cravings bool   `help:"Export cravings instead of daily logs."`
	Output   string `short:"o" type:"path" help:"Write CSV to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warn("Failed to close export file", "path", c.Output, "error", err)
			}
		}()
		w = f
	}

	var rows int
	if c.Cravings {
		cravings, err := ctx.Store.GetCravings()
		if err != nil {
			return fmt.Errorf("failed to load cravings: %w", err)
		}
		if err := export.Cravings(w, cravings); err != nil {
			return err
		}
		rows = len(cravings)
	} else {
		logs, err := ctx.Store.GetDailyLogs()
		if err != nil {
			return fmt.Errorf("failed to load daily logs: %w", err)
		}
		if err := export.DailyLogs(w, logs); err != nil {
			return err
		}
		rows = len(logs)
	}

	logger.Info("Exported CSV", "rows", rows, "cravings", c.Cravings, "output", c.Output)
	if c.Output != "" {
		fmt.Printf("✓ Exported %d rows to %s\n", rows, c.Output)
	}
	return nil
}
