package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Month validation, "YYYY-MM"
func IsValidMonth(monthStr string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClockTime checks a 24-hour "HH:mm" wall-clock string.
func IsValidClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

// Device employee codes are the short numeric identifiers assigned by the
// attendance terminal, 1 to 8 digits.
var employeeCodeRegex = regexp.MustCompile(`^[0-9]{1,8}$`)

func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

var shiftCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,16}$`)

func IsValidShiftCode(code string) bool {
	return shiftCodeRegex.MatchString(code)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
