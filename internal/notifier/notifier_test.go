package notifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/daybook/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
	return dir
}

func stubProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = fn
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := stubConfigDir(t)

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/daybook/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	bad := []struct {
		name    string
		content string
		errHint string
	}{
		{"two part format", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|s3cret", "port"},
		{"port out of range", "99999|12345|s3cret", "range"},
		{"bad pid", "8080|abc|s3cret", "process ID"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil || !strings.Contains(err.Error(), tt.errHint) {
				t.Errorf("expected error mentioning %q, got %v", tt.errHint, err)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|s3cret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stubProcess(t, func(int) (ps.Process, error) { return nil, nil })
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	stubProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	})
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	stubProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "daybook-tray"}, nil
	})
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" || secret != "s3cret" {
		t.Errorf("got port %q secret %q", port, secret)
	}
}

func trayServer(t *testing.T, got *WebhookPayload) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Daybook-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if got != nil {
			*got = payload
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	return u.Port()
}

func TestSend(t *testing.T) {
	port := trayServer(t, nil)
	n := New()

	if err := n.send(port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := n.send(port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}
	if err := n.send(port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestNotifyEndToEnd(t *testing.T) {
	var got WebhookPayload
	port := trayServer(t, &got)

	configDir := stubConfigDir(t)
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := port + "|4242|test-secret"
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}
	stubProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "daybook-tray"}, nil
	})
	d := stubDesktop(t, "linux", nil, true)

	if err := New().Notify("Reminder", "Pay rent"); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if got.Title != "Reminder" || got.Text != "Pay rent" || got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("unexpected payload: %+v", got)
	}
	if len(d.dbus)+len(d.commands) != 0 {
		t.Errorf("a running tray should take the notification, desktop saw %v %v", d.dbus, d.commands)
	}
}

// desktopStub replaces the OS notification hooks and records what they see.
type desktopStub struct {
	dbus     []string
	commands [][]string
}

func stubDesktop(t *testing.T, platform string, dbusErr error, onPath bool) *desktopStub {
	t.Helper()
	d := &desktopStub{}
	oldGOOS, oldDBus, oldLook, oldRun := goos, dbusNotify, lookPath, runCommand
	t.Cleanup(func() { goos, dbusNotify, lookPath, runCommand = oldGOOS, oldDBus, oldLook, oldRun })

	goos = platform
	dbusNotify = func(title, body string) error {
		d.dbus = append(d.dbus, title+"|"+body)
		return dbusErr
	}
	lookPath = func(file string) (string, error) {
		if !onPath {
			return "", fmt.Errorf("%s: not found", file)
		}
		return "/usr/bin/" + file, nil
	}
	runCommand = func(name string, args ...string) error {
		d.commands = append(d.commands, append([]string{name}, args...))
		return nil
	}
	return d
}

func TestNotifyWithoutTray(t *testing.T) {
	stubConfigDir(t)
	stubDesktop(t, "linux", errors.New("no session bus"), false)

	err := New().Notify("Timer", "done")
	if !errors.Is(err, ErrTrayUnavailable) {
		t.Errorf("expected ErrTrayUnavailable, got %v", err)
	}
}

func TestNotifyFallsBackToDesktop(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		dbusErr  error
		wantDBus int
		wantCmd  []string
	}{
		{"freedesktop", "linux", nil, 1, nil},
		{"notify-send", "linux", errors.New("no session bus"), 1, []string{"notify-send", "--app-name", constants.AppName, "Timer", "done"}},
		{"osascript", "darwin", nil, 0, []string{"osascript", "-e", `display notification "done" with title "Timer"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubConfigDir(t)
			d := stubDesktop(t, tt.goos, tt.dbusErr, true)

			if err := New().Notify("Timer", "done"); err != nil {
				t.Fatalf("Notify() failed: %v", err)
			}
			if len(d.dbus) != tt.wantDBus {
				t.Errorf("expected %d session bus calls, got %v", tt.wantDBus, d.dbus)
			}
			if tt.wantDBus > 0 && d.dbus[0] != "Timer|done" {
				t.Errorf("unexpected session bus payload %q", d.dbus[0])
			}
			if tt.wantCmd == nil {
				if len(d.commands) != 0 {
					t.Errorf("expected no commands, got %v", d.commands)
				}
				return
			}
			if len(d.commands) != 1 || strings.Join(d.commands[0], " ") != strings.Join(tt.wantCmd, " ") {
				t.Errorf("expected command %v, got %v", tt.wantCmd, d.commands)
			}
		})
	}
}

func TestNotifyWindowsWithoutTray(t *testing.T) {
	stubConfigDir(t)
	d := stubDesktop(t, "windows", nil, true)

	if err := New().Notify("Timer", "done"); !errors.Is(err, ErrTrayUnavailable) {
		t.Errorf("expected ErrTrayUnavailable, got %v", err)
	}
	if len(d.dbus)+len(d.commands) != 0 {
		t.Errorf("expected no desktop attempts, got %v %v", d.dbus, d.commands)
	}
}

type recordingSender struct {
	calls int
	err   error
}

func (r *recordingSender) Notify(string, string) error {
	r.calls++
	return r.err
}

func TestDispatchSwallowsErrors(t *testing.T) {
	s := &recordingSender{err: errors.New("permission denied")}
	Dispatch(s, "Timer", "done")
	if s.calls != 1 {
		t.Errorf("expected one delivery attempt, got %d", s.calls)
	}

	Dispatch(nil, "Timer", "done")
}
