package player

import (
	"fmt"
	"time"
)

// FormatRemaining renders d as [-]MM:SS. Overtime keeps its sign rather than
// being clamped to zero.
func FormatRemaining(d time.Duration) string {
	ms := d.Milliseconds()
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%02d:%02d", sign, ms/60000, (ms/1000)%60)
}
