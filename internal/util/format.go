// Package util has small display helpers shared by the overlay.
package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as MM:SS.
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
