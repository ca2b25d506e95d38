package utils

import (
	"fmt"
	"regexp"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateDateBound validates a filter date bound. Empty means unset.
func ValidateDateBound(name, value string) error {
	if value == "" {
		return nil
	}
	if _, ok := ParseDate(value); !ok {
		return fmt.Errorf("invalid %s date: %q", name, value)
	}
	return nil
}

// ValidateDateRange validates both bounds and that start is not after end
func ValidateDateRange(start, end string) error {
	if err := ValidateDateBound("start", start); err != nil {
		return err
	}
	if err := ValidateDateBound("end", end); err != nil {
		return err
	}
	if start == "" || end == "" {
		return nil
	}
	s, _ := ParseDate(start)
	e, _ := ParseDate(end)
	if s.After(e) {
		return fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return nil
}

// ValidatePercent validates a percentage in [0, 100]
func ValidatePercent(name string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100: %.2f", name, v)
	}
	return nil
}

// SanitizeString removes control characters from imported cell values
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
