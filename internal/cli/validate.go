package cli

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"umabank.org/internal/ledger"
)

// maxAmount caps single-operation amounts at 10,000,000 kwanzas.
const maxAmount = ledger.Money(10_000_000 * 100)

// Latin-1 letters only: the × (U+00D7) and ÷ (U+00F7) signs sit inside
// the À-ÿ block and must stay out.
var namePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s'-]+$`)

// ValidName accepts full names of letters, spaces, apostrophes and
// hyphens, at least three characters.
func ValidName(name string) bool {
	if utf8.RuneCountInString(name) < 3 {
		return false
	}
	return namePattern.MatchString(name)
}

// ValidNationalID accepts a BI of 8 to 15 digits, ignoring spaces and
// hyphens.
func ValidNationalID(bi string) bool {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, bi)
	if len(clean) < 8 || len(clean) > 15 {
		return false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidDate accepts DD-MM-AAAA calendar dates (leap years included)
// with years 1900 through 2024.
func ValidDate(date string) bool {
	t, err := time.Parse("02-01-2006", date)
	if err != nil {
		return false
	}
	return t.Year() >= 1900 && t.Year() <= 2024
}

// ValidAmount accepts operation amounts strictly between zero and ten
// million kwanzas.
func ValidAmount(amount ledger.Money) bool {
	return amount.IsPositive() && amount <= maxAmount
}
