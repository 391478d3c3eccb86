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

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var (
	// ErrTrayNotRunning is returned when no companion tray app is listening
	ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")
	// ErrMalformedLockfile is returned when the tray lockfile cannot be parsed
	ErrMalformedLockfile = errors.New("tray lockfile is malformed")
)

// Notifier delivers desktop notifications through the tray app's webhook
type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify posts text to the running tray app.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	ep, err := readTrayEndpoint(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	if err := ep.verify(); err != nil {
		return err
	}

	logger.Debug("Sending reminder to tray app", "port", ep.port)
	return n.send(ctx, ep, WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// GetTrayAppConfigDir returns the directory holding the tray app lockfile.
// A lockfile_dir in the tray's settings.json overrides the default.
func GetTrayAppConfigDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.TrayAppIdentifier)

	raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var doc struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(raw, &doc) == nil && doc.Settings.LockfileDir != "" {
		return doc.Settings.LockfileDir, nil
	}
	return dir, nil
}

// trayEndpoint is what the tray app advertises in its lockfile
type trayEndpoint struct {
	port   int
	pid    int
	secret string
}

// readTrayEndpoint loads the lockfile at path. A missing file means the tray
// app is not running.
func readTrayEndpoint(path string) (trayEndpoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}
	return parseLockfile(string(raw))
}

// parseLockfile decodes "port|pid|secret".
func parseLockfile(content string) (trayEndpoint, error) {
	fields := strings.Split(strings.TrimSpace(content), "|")
	if len(fields) != 3 {
		return trayEndpoint{}, fmt.Errorf("%w: want port|pid|secret", ErrMalformedLockfile)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var ep trayEndpoint
	var err error
	if ep.port, err = strconv.Atoi(fields[0]); err != nil {
		return trayEndpoint{}, fmt.Errorf("%w: bad port %q", ErrMalformedLockfile, fields[0])
	}
	if ep.port < 1 || ep.port > 65535 {
		return trayEndpoint{}, fmt.Errorf("%w: port %d out of range", ErrMalformedLockfile, ep.port)
	}
	if ep.pid, err = strconv.Atoi(fields[1]); err != nil {
		return trayEndpoint{}, fmt.Errorf("%w: bad pid %q", ErrMalformedLockfile, fields[1])
	}
	if ep.secret = fields[2]; ep.secret == "" {
		return trayEndpoint{}, fmt.Errorf("%w: empty secret", ErrMalformedLockfile)
	}
	return ep, nil
}

// verify checks that the advertised pid is still the tray app. Lockfiles
// outlive crashed processes and pids get reused.
func (ep trayEndpoint) verify() error {
	proc, err := findProcessFunc(ep.pid)
	if err != nil || proc == nil {
		return ErrTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayAppExecutable) {
		return fmt.Errorf("pid %d belongs to %s, not %s", ep.pid, proc.Executable(), constants.TrayAppExecutable)
	}
	return nil
}

func (ep trayEndpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(ep.port)
}

func (n *Notifier) send(ctx context.Context, ep trayEndpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Streaklit-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", constants.TrayAppExecutable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("tray app rejected notification (%d): %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
