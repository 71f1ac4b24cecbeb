package checkout

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCardNumber = errors.New("please enter a valid 16-digit card number")
	ErrInvalidExpiry     = errors.New("please enter a valid expiry date (MM / YY)")
	ErrInvalidCVC        = errors.New("please enter a valid CVC")
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}\s?/\s?\d{2}$`)
	cvcRe        = regexp.MustCompile(`^\d{3,4}$`)
)

type CardDetails struct {
	Number string
	Expiry string
	CVC    string
}

// ValidateCard checks number, expiry and CVC in that order and reports
// the first failure. Whitespace inside the card number is ignored; the
// expiry must contain the slash, with optional spaces around it.
func ValidateCard(c CardDetails) error {
	if !cardNumberRe.MatchString(strings.ReplaceAll(c.Number, " ", "")) {
		return ErrInvalidCardNumber
	}
	if !expiryRe.MatchString(c.Expiry) {
		return ErrInvalidExpiry
	}
	if !cvcRe.MatchString(c.CVC) {
		return ErrInvalidCVC
	}
	return nil
}
