package device

import (
	"fmt"
	"regexp"

	"github.com/urmzd/autovolt/pkg/gpio"
)

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTime reports whether s is a 24-hour HH:MM time.
func ValidTime(s string) bool {
	return timeOfDay.MatchString(s)
}

// validDays reports whether days is a non-empty set of weekdays 0..6.
func validDays(days []int) bool {
	if len(days) == 0 {
		return false
	}
	seen := map[int]bool{}
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// Validate checks the notification window. A disabled window is never
// checked, so it may hold partial values.
func (n Notifications) Validate() []gpio.Issue {
	if !n.Enabled {
		return nil
	}
	var issues []gpio.Issue
	if !ValidTime(n.AfterTime) {
		issues = append(issues, gpio.Issue{
			Field:      "deviceNotifications.afterTime",
			Message:    fmt.Sprintf("Notification time %q must be in HH:MM format", n.AfterTime),
			Suggestion: "Use a 24-hour time such as 17:30",
		})
	}
	if !validDays(n.DaysOfWeek) {
		issues = append(issues, gpio.Issue{
			Field:   "deviceNotifications.daysOfWeek",
			Message: "Select at least one day for notifications",
		})
	}
	return issues
}

// Validate checks the motion sensor schedule under the same rule as
// notifications: fields are required only while the schedule is enabled.
func (s Schedule) Validate(field string) []gpio.Issue {
	if !s.Enabled {
		return nil
	}
	var issues []gpio.Issue
	for _, t := range []struct{ name, value string }{
		{"startTime", s.StartTime},
		{"endTime", s.EndTime},
	} {
		if !ValidTime(t.value) {
			issues = append(issues, gpio.Issue{
				Field:      field + "." + t.name,
				Message:    fmt.Sprintf("Schedule time %q must be in HH:MM format", t.value),
				Suggestion: "Use a 24-hour time such as 08:00",
			})
		}
	}
	if !validDays(s.DaysOfWeek) {
		issues = append(issues, gpio.Issue{
			Field:   field + ".daysOfWeek",
			Message: "Select at least one day for the schedule",
		})
	}
	return issues
}

// Check evaluates every invariant a draft must satisfy before submission
// against the board's static catalog: unique pins across all roles, the
// switch ceiling, manual pins present when enabled, and both schedule
// windows. It needs no network and is what the backend runs on save.
func Check(d Draft) gpio.ValidationResult {
	result := gpio.Validate(d.ValidateRequest(nil))

	for _, issue := range d.Notifications.Validate() {
		result.AddError(issue)
	}
	for _, issue := range d.PIRSchedule.Validate("pirDetectionSchedule") {
		result.AddError(issue)
	}
	return result
}
