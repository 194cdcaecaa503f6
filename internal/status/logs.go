package status

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// readyMarker is the line prefix launch_server.sh prints once the vLLM
// server is accepting requests; the base URL follows it on the same line.
const readyMarker = "Server address: "

// logChecks holds the results of inspecting a job's log artifacts.
// Missing or unreadable files never fail a check; they leave the zero
// value in place.
type logChecks struct {
	ready     bool
	baseURL   string
	tunnelURL string
	errFound  bool
}

// inspectLogs runs the health check for a RUNNING job: the stdout log is
// searched for the ready marker, and when the server is not yet ready the
// stderr log is scanned for startup failures.
func inspectLogs(logDir, model, jobID string) logChecks {
	var c logChecks

	if content, ok := readGlobFirst(logDir, fmt.Sprintf("%s.%s.out", model, jobID)); ok {
		if line, found := findMarkerLine(content); found {
			c.ready = true
			c.baseURL = strings.TrimSpace(line[strings.Index(line, readyMarker)+len(readyMarker):])
			c.tunnelURL = lastNonBlankLine(filepath.Join(logDir, fmt.Sprintf("%s.%s.tunnel_url", model, jobID)))
			return c
		}
	}

	if content, ok := readGlobFirst(logDir, fmt.Sprintf("%s.%s.err", model, jobID)); ok {
		lower := strings.ToLower(content)
		c.errFound = strings.Contains(lower, "error") || strings.Contains(lower, "exception")
	}

	return c
}

// findMarkerLine returns the first log line carrying the ready marker.
func findMarkerLine(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, readyMarker) {
			return line, true
		}
	}
	return "", false
}

// readGlobFirst reads the first file matching pattern under dir. Stale
// logs from prior attempts with the same model name also match; the first
// glob result wins, mirroring the scheduler-side log layout contract.
func readGlobFirst(dir, pattern string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", false
	}
	return string(data), true
}

// lastNonBlankLine returns the last non-blank line of the file at path.
// Tunnel provisioning writes diagnostic lines before the final URL, so
// only the last populated line is authoritative.
func lastNonBlankLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
