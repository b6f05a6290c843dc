// Package browser launches the system default web browser.
package browser

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Open opens the URL in the default browser. It is a no-op when launch
// suppression applies, so callers can invoke it unconditionally.
func Open(url string) error {
	if Suppressed() {
		return nil
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

// Suppressed reports whether automatic browser launch is disabled.
func Suppressed() bool {
	// Always skip browser launch when running under `go test`.
	if flag.Lookup("test.v") != nil {
		return true
	}

	// Explicit opt-outs for automation/CI environments.
	noBrowser := strings.TrimSpace(strings.ToLower(os.Getenv("GYAZO_NO_BROWSER")))
	if noBrowser == "1" || noBrowser == "true" || noBrowser == "yes" {
		return true
	}

	return os.Getenv("GYAZO_TESTING") == "1"
}
