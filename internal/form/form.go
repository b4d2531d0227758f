// Package form turns raw presentation-layer input into history.Fields.
//
// Forms emit strings. An empty string means "unset", never zero, and a
// value that is not a number is a ParseError naming the field. Query-string
// prefill is more forgiving: anything unusable is simply left unset.
package form

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/imc"
	"github.com/spf13/cast"
)

// Raw is what the record form submits.
type Raw struct {
	Name   string
	Weight string
	Height string
	IMC    string
	Date   string
}

// Parse converts a submitted form into Fields. Presence and range checks
// are left to the store; Parse only rejects values it cannot read.
func Parse(raw Raw) (history.Fields, error) {
	var f history.Fields
	var err error

	f.Name = strings.TrimSpace(raw.Name)

	if f.Weight, err = Number("weight", raw.Weight); err != nil {
		return history.Fields{}, err
	}
	if f.Height, err = Number("height", raw.Height); err != nil {
		return history.Fields{}, err
	}
	if f.IMC, err = Number("imc", raw.IMC); err != nil {
		return history.Fields{}, err
	}

	f.Date = strings.TrimSpace(raw.Date)
	if f.Date != "" {
		if _, perr := time.Parse(history.DateLayout, f.Date); perr != nil {
			return history.Fields{}, &imc.ParseError{Field: "date", Value: f.Date, Err: perr}
		}
	}
	return f, nil
}

// Prefill reads weight, height and imc from query parameters, as passed
// from the calculator to the record form. It never fails.
func Prefill(q url.Values) history.Fields {
	var f history.Fields
	f.Weight, _ = Number("weight", q.Get("weight"))
	f.Height, _ = Number("height", q.Get("height"))
	f.IMC, _ = Number("imc", q.Get("imc"))
	return f
}

// Number converts v to a finite float64. v may be a JSON number, a numeric
// string, or nil. Nil and blank strings return (nil, nil). A decimal comma
// ("1,75") is accepted.
func Number(field string, v any) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return nil, &imc.ParseError{Field: field, Value: cast.ToString(t)}
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		if !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		v = s
	}

	n, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, &imc.ParseError{Field: field, Value: cast.ToString(v), Err: err}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, &imc.ParseError{Field: field, Value: cast.ToString(v)}
	}
	return &n, nil
}
