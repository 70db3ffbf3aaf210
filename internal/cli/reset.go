package cli

import (
	"fmt"

	"github.com/julianstephens/puffless/internal/logger"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		fmt.Println("⚠️  WARNING: This deletes your profile, quit plan and every log.")
		ok, err := ctx.confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	logger.Info("All data reset", "path", ctx.Store.GetConfigPath())
	fmt.Println("✓ All data deleted. Run 'puffless init' to start a new plan.")
	return nil
}
