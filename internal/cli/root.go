package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/puffless/internal/backup"
	perrors "github.com/julianstephens/puffless/internal/errors"
	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker

	// In is read by confirmation prompts; nil means os.Stdin.
	In io.Reader
}

// PerformAutomaticBackup snapshots the SQLite database. Failures are logged
// and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		logger.Debug("Skipping automatic backup for non-SQLite store")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// onboardingHint points the user at init when a command needs a plan.
func onboardingHint(err error) error {
	if errors.Is(err, tracker.ErrNotOnboarded) {
		return perrors.WithHint(err, "create your quit plan with 'puffless init'")
	}
	return err
}

func sqliteStore(store storage.Provider) (*storage.SQLiteStore, error) {
	s, ok := store.(*storage.SQLiteStore)
	if !ok {
		return nil, perrors.WithHint(fmt.Errorf("backups require the sqlite store"), "run with --store sqlite")
	}
	return s, nil
}
