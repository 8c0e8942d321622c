package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OSOpenCmd allows mocking the open command. $BROWSER wins over the platform
// default when set.
var OSOpenCmd = func(url string) *exec.Cmd {
	if browser := strings.TrimSpace(os.Getenv("BROWSER")); browser != "" {
		return exec.Command(browser, url) //nolint:gosec
	}
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url) //nolint:gosec
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:gosec
	case "darwin":
		return exec.Command("open", url) //nolint:gosec
	default:
		return nil
	}
}

func openBrowser(url string) error {
	cmd := OSOpenCmd(url)
	if cmd == nil {
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
