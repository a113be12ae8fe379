// +build !windows

package spanpaperlib

import (
	"errors"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

const dbusAddress = "DBUS_SESSION_BUS_ADDRESS"

func setDBUSAddress() error {
	dbus := os.Getenv(dbusAddress)
	if dbus == "" {
		// For now just assume we're dealing with per-user dbus sessions
		// TODO -- This is definitely not good enough
		user, err := user.Current()
		if err != nil {
			return nil
		}
		uid := user.Uid
		if uid == "" {
			return errors.New("No $UID set")
		}
		return os.Setenv(dbusAddress, "unix:path=/run/user/"+uid+"/bus")
	}

	return nil
}

func setGnomeWallpaper(path AbsolutePath, c *Config) error {
	oldWall, err := runBash(`
		gsettings get org.gnome.desktop.background picture-uri
	`)
	if err != nil {
		return err
	}

	// spanned stretches one image across every monitor, which is the
	// whole point of compositing the strips ourselves.
	_, err = runBash(`
		gsettings set org.gnome.desktop.background picture-options spanned
		gsettings set org.gnome.desktop.background picture-uri "file://` + path + `"
	`)
	if err != nil {
		return err
	}

	oldWall = strings.TrimPrefix(strings.Trim(oldWall, "'\n"), "file://")
	// Only remove files we own
	if filepath.Dir(oldWall) == c.OutputDir {
		// This could have already been removed, bury any errors
		_ = os.Remove(oldWall)
	}

	return nil
}

func setFehWallpaper(path AbsolutePath) error {
	// --no-xinerama makes feh treat the whole X screen as one surface,
	// which is exactly what a pre-composited spanned wallpaper needs.
	cmd := exec.Command("feh", "--no-xinerama", "--bg-fill", path)
	cmd.SysProcAttr = sysProcAttr
	return cmd.Run()
}

// SetWallpaper installs an already composited file as the spanned
// wallpaper of the current session.
func SetWallpaper(path AbsolutePath) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	sessions, err := listSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errors.New("No graphical sessions found")
	}

	// TODO -- set every session, not just the first
	s := sessions[0]

	os.Setenv("DISPLAY", s.display)

	if err = setDBUSAddress(); err != nil {
		return err
	}

	if err = detectEnvironment(&s); err != nil {
		return err
	}

	if s.env == gnome {
		return setGnomeWallpaper(path, c)
	}

	return setFehWallpaper(path)
}

// CheckIfLocked is only meaningful on Windows. X has no single lock
// concept to query, so sessions here always count as unlocked.
func CheckIfLocked() (bool, error) {
	return false, nil
}

// No-op
func AttachParentConsole() {}

func runBash(cmd string) (string, error) {
	// See http://redsymbol.net/articles/unofficial-bash-strict-mode/
	command := `
		set -euo pipefail
		IFS=$'\n\t'
		` + cmd + "\n"

	bash := exec.Command("/usr/bin/env", "bash")
	bash.Stdin = strings.NewReader(command)
	bash.Stderr = os.Stderr

	bashOut, err := bash.Output()
	return string(bashOut), err
}
