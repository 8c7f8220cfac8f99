package notifier

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/godbus/dbus/v5"

	"github.com/julianstephens/daybook/internal/constants"
)

const (
	fdoDest      = "org.freedesktop.Notifications"
	fdoPath      = "/org/freedesktop/Notifications"
	fdoNotifyMtd = fdoDest + ".Notify"
)

var (
	goos       = runtime.GOOS
	dbusNotify = notifyFreedesktop
	lookPath   = exec.LookPath
	runCommand = func(name string, args ...string) error {
		return exec.Command(name, args...).Run()
	}

	errNoDesktop = errors.New("no desktop notification service")
)

// notifyDesktop posts straight to the OS notification service. It is used
// when the tray app is not running.
func notifyDesktop(title, body string) error {
	switch goos {
	case "darwin":
		return notifyAppleScript(title, body)
	case "windows":
		return errNoDesktop
	default:
		if err := dbusNotify(title, body); err != nil {
			// Session bus missing (ssh, containers); notify-send may still work
			if _, lerr := lookPath("notify-send"); lerr != nil {
				return fmt.Errorf("%w: %v", errNoDesktop, err)
			}
			return runCommand("notify-send", "--app-name", constants.AppName, title, body)
		}
		return nil
	}
}

func notifyFreedesktop(title, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	call := conn.Object(fdoDest, dbus.ObjectPath(fdoPath)).Call(fdoNotifyMtd, 0,
		constants.AppName, uint32(0), "", title, body,
		[]string{}, map[string]dbus.Variant{}, int32(constants.NotificationDurationMs))
	return call.Err
}

func notifyAppleScript(title, body string) error {
	if _, err := lookPath("osascript"); err != nil {
		return fmt.Errorf("%w: %v", errNoDesktop, err)
	}
	script := "display notification " + strconv.Quote(body) + " with title " + strconv.Quote(title)
	return runCommand("osascript", "-e", script)
}
