package domain

import (
	"fmt"
	"regexp"
)

// Day 01-31, month 01-12, any four-digit year. Calendar validity
// (e.g. 31/02) is not checked.
var datePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/([0-9]{4})$`)

// ValidateDate checks the strict dd/mm/yyyy ledger key format.
func ValidateDate(date string) error {
	if !datePattern.MatchString(date) {
		return fmt.Errorf("%w: %q is not dd/mm/yyyy", ErrInvalidDate, date)
	}
	return nil
}
