// Package audio holds what the timeline needs from voice messages:
// the duration label format, the player contract and clip sniffing.
// Recording is not handled here.
package audio

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds as MM:SS. Minutes are not wrapped at one hour.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "00:00"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
