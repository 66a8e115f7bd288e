// Package normalize turns raw registry values into the text shapes contracts expect.
package normalize

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/robinvdvleuten/contrato/record"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayDate is the layout dates take inside contract text.
const DisplayDate = "02/01/2006"

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Or returns s unless it is blank, in which case it returns fallback.
func Or(s, fallback string) string {
	if IsBlank(s) {
		return fallback
	}
	return s
}

// Upper upper-cases s with Brazilian Portuguese casing rules.
func Upper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}

// Address joins the non-blank components of a with ", ". The postal code is
// prefixed with "CEP ".
func Address(a record.Address) string {
	parts := []string{a.Street, a.Number, a.Complement, a.District, a.Municipality, a.State}
	if !IsBlank(a.PostalCode) {
		parts = append(parts, "CEP "+strings.TrimSpace(a.PostalCode))
	}

	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// PostalAddress renders a in the upper-cased form used by free-form documents:
//
//	RUA DAS FLORES, 00042, SALA 3, CENTRO, RECIFE, - PE, CEP: 50000-000.
func PostalAddress(a record.Address) string {
	var parts []string

	switch {
	case !IsBlank(a.Street) && !IsBlank(a.Number):
		parts = append(parts, Upper(a.Street)+", "+padLeft(a.Number, 5, '0'))
	case !IsBlank(a.Street):
		parts = append(parts, Upper(a.Street))
	}

	if !IsBlank(a.Complement) {
		parts = append(parts, Upper(a.Complement))
	}
	if !IsBlank(a.District) {
		parts = append(parts, Upper(a.District))
	}

	switch {
	case !IsBlank(a.Municipality) && !IsBlank(a.State):
		parts = append(parts, Upper(a.Municipality)+", - "+Upper(a.State))
	case !IsBlank(a.Municipality):
		parts = append(parts, Upper(a.Municipality))
	}

	if !IsBlank(a.PostalCode) {
		parts = append(parts, "CEP: "+a.PostalCode)
	}

	return strings.Join(parts, ", ") + "."
}

// Date converts an ISO date (2024-01-10, optionally followed by a time) to
// DD/MM/YYYY. Blank input yields "" and unrecognized input is returned unchanged.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return t.Format(DisplayDate)
		}
	}
	return s
}

// DateOr is like Date but returns fallback for blank input.
func DateOr(s, fallback string) string {
	if IsBlank(s) {
		return fallback
	}
	return Date(s)
}

// ISO formats t as YYYY-MM-DD.
func ISO(t time.Time) string {
	return t.Format(time.DateOnly)
}

func padLeft(s string, width int, pad rune) string {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}
