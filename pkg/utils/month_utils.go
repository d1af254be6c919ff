package utils

import (
	"fmt"
	"regexp"
	"time"
)

// Calendar months are handled as "YYYY-MM" strings throughout. The format
// sorts lexicographically in chronological order, so string comparison is
// enough to order months.
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func IsValidMonth(month string) bool {
	return monthPattern.MatchString(month)
}

func ValidateMonth(month string) error {
	if !IsValidMonth(month) {
		return ErrInvalidMonth
	}
	return nil
}

// CurrentMonth returns the current calendar month as "YYYY-MM".
func CurrentMonth() string {
	now := time.Now()
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FormatMonth renders "2024-06" as "June 2024" for display contexts.
// Returns the input unchanged if it does not parse.
func FormatMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}
