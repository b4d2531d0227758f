// Package imc implements the body mass index calculator and its
// classification table.
//
// Everything here is pure: no I/O, no package state. The history store,
// the MCP tools and the CLI all go through Compute and Classify so the
// live result and a saved record can never disagree.
package imc

import (
	"fmt"
	"math"
	"strconv"
)

// Accepted input ranges, inclusive at both ends.
const (
	MinWeight = 20.0  // kg
	MaxWeight = 300.0 // kg
	MinHeight = 0.5   // m
	MaxHeight = 3.0   // m
)

// Compute validates weight (kg) and height (m) and returns weight / height².
// The value is not rounded; rounding is a display concern (see Format).
func Compute(weight, height float64) (float64, error) {
	if err := Validate(weight, height); err != nil {
		return 0, err
	}
	return weight / (height * height), nil
}

// Validate reports the first problem with a weight/height pair, or nil.
func Validate(weight, height float64) error {
	if !isFinite(weight) {
		return &ParseError{Field: "weight", Value: strconv.FormatFloat(weight, 'g', -1, 64)}
	}
	if !isFinite(height) {
		return &ParseError{Field: "height", Value: strconv.FormatFloat(height, 'g', -1, 64)}
	}
	if height <= 0 {
		return &ValidationError{Field: "height", Message: "must be greater than zero"}
	}
	if weight < MinWeight || weight > MaxWeight {
		return &ValidationError{
			Field:   "weight",
			Message: fmt.Sprintf("must be between %g and %g kg", MinWeight, MaxWeight),
		}
	}
	if height < MinHeight || height > MaxHeight {
		return &ValidationError{
			Field:   "height",
			Message: fmt.Sprintf("must be between %g and %g m", MinHeight, MaxHeight),
		}
	}
	return nil
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Format renders an index the way the result card shows it: one decimal.
func Format(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', 1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
