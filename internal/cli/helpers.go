package cli

import (
	"fmt"

	"cubetimer"
)

// formatTime renders a time in milliseconds as m:ss.cc or s.cc.
// The DNF sentinel renders as "DNF".
func formatTime(ms int) string {
	if ms == cubetimer.DNF {
		return "DNF"
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis)
	}
	return fmt.Sprintf("%d.%02d", seconds, centis)
}

// solveResult renders a solve's effective time including penalty, or DNF.
func solveResult(s *cubetimer.Solve) string {
	if !s.OK {
		return "DNF"
	}
	if s.Penalty > 0 {
		return formatTime(int(s.Time)) + "+"
	}
	return formatTime(int(s.Time))
}

// shortID abbreviates a record identifier for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
