package state

import "strings"

// FooterText returns the footer content for the current session.
func FooterText(session Session, statusMessage, pushStatus, helpText string) string {
	var lines []string
	if msg := strings.TrimSpace(statusMessage); msg != "" {
		lines = append(lines, msg)
	}
	if push := strings.TrimSpace(pushStatus); push != "" && session == DashboardView {
		lines = append(lines, push)
	}
	if helpText != "" {
		lines = append(lines, helpText)
	}
	return strings.Join(lines, "\n")
}
