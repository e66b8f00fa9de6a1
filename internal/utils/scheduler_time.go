package utils

import (
	"fmt"
	"time"
)

const (
	schedulerTimeTemplateConstant = "%02d:%02d:%02d"
	minutesPerHourConstant        = 60
	secondsPerMinuteConstant      = 60
)

// FormatSchedulerTime renders a duration as HH:MM:SS for scheduler submission scripts.
//
// Hours accumulate past 24 instead of rolling over into days. Negative
// durations clamp to zero.
func FormatSchedulerTime(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	totalSeconds := int64(duration / time.Second)
	hours := totalSeconds / (minutesPerHourConstant * secondsPerMinuteConstant)
	remainingSeconds := totalSeconds % (minutesPerHourConstant * secondsPerMinuteConstant)
	minutes := remainingSeconds / secondsPerMinuteConstant
	seconds := remainingSeconds % secondsPerMinuteConstant

	return fmt.Sprintf(schedulerTimeTemplateConstant, hours, minutes, seconds)
}

// SchedulerTimeFromHours renders a fractional hour count as HH:MM:SS.
func SchedulerTimeFromHours(hours float64) string {
	return FormatSchedulerTime(time.Duration(hours * float64(time.Hour)))
}
