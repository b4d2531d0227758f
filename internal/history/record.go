// Package history implements the IMC record store: an ordered, newest-first
// list of saved calculations persisted as a single JSON array under one
// storage key.
//
// The Store is an explicitly owned object. It is constructed once per
// process, mounted with Load, and written back wholesale after every
// mutation. Its only I/O edges are the storage.Backend Get and Put calls.
package history

import (
	"strings"

	"github.com/HendryAvila/imc/internal/imc"
)

// DateLayout is the calendar date format records carry (a date picker value).
const DateLayout = "2006-01-02"

// Record is one persisted history entry.
type Record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	IMC      float64 `json:"imc"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

// Fields is the user-supplied part of a record. Nil numbers and empty
// strings are unset.
type Fields struct {
	Name   string
	Weight *float64
	Height *float64
	// IMC is accepted for form compatibility but never trusted: the
	// stored value is always recomputed from Weight and Height.
	IMC  *float64
	Date string
}

// Float returns a pointer to v, for building Fields literals.
func Float(v float64) *float64 { return &v }

// matches reports whether term occurs in the record's name or category,
// ignoring case. term must already be lower-cased.
func (r Record) matches(term string) bool {
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Category), term)
}

// Classification returns the full table entry for the record's index.
func (r Record) Classification() imc.Category {
	return imc.Classify(r.IMC)
}
