package profile

import (
	"fmt"
	"strings"
)

const (
	NationalIDDigits = 11
	TaxIDDigits      = 14
)

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatNationalID renders 11 digits as 000.000.000-00. Anything else is returned unchanged.
func FormatNationalID(id string) string {
	d := DigitsOnly(id)
	if len(d) != NationalIDDigits {
		return id
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

// FormatTaxID renders 14 digits as 00.000.000/0000-00. Anything else is returned unchanged.
func FormatTaxID(id string) string {
	d := DigitsOnly(id)
	if len(d) != TaxIDDigits {
		return id
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}
