package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/logger"
)

const trayExecutable = "puffless-tray"

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Sender delivers a notification to the user.
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

// WebhookPayload is the body posted to the tray app
type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// TraySender posts notifications to the local tray app's webhook.
type TraySender struct {
	client *http.Client
}

func NewTraySender() *TraySender {
	return &TraySender{client: &http.Client{Timeout: 5 * time.Second}}
}

// Send looks up the running tray app and posts the notification, retrying
// transient delivery failures.
func (s *TraySender) Send(ctx context.Context, title, body string) error {
	dir, err := TrayAppConfigDir()
	if err != nil {
		return err
	}
	lock, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       title + ": " + body,
		DurationMs: constants.NotificationDurationMs,
	}

	for attempt := 1; ; attempt++ {
		err = s.post(ctx, lock, payload)
		if err == nil || attempt >= constants.NotifyMaxRetries {
			return err
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.NotifyRetryDelay):
		}
	}
}

// TrayAppConfigDir returns the directory holding the tray app lockfile. The
// tray app may point it elsewhere with lockfile_dir in its settings.json.
func TrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

type trayLock struct {
	Port   int
	PID    int
	Secret string
}

// parseLockfile reads the "port|pid|secret" lockfile format.
func parseLockfile(content string) (trayLock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}
	if strings.TrimSpace(parts[0]) == "" {
		return trayLock{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[2]) == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}
	return trayLock{Port: port, PID: pid, Secret: parts[2]}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (trayLock, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayLock{}, errors.New(trayExecutable + " is not running")
	}
	lock, err := parseLockfile(string(content))
	if err != nil {
		return trayLock{}, err
	}

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return trayLock{}, errors.New(trayExecutable + " process not running")
	}
	if !strings.HasPrefix(process.Executable(), trayExecutable) {
		return trayLock{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.PID, trayExecutable, process.Executable())
	}
	return lock, nil
}

func (s *TraySender) post(ctx context.Context, lock trayLock, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Puffless-Secret", lock.Secret)

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}

// WriterSender prints notifications instead of delivering them.
type WriterSender struct {
	W io.Writer
}

func (s WriterSender) Send(_ context.Context, title, body string) error {
	_, err := fmt.Fprintf(s.W, "[DryRun] %s: %s\n", title, body)
	return err
}
