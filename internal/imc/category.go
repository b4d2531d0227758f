package imc

import (
	"math"
	"strings"
)

// Category is one bucket of the classification table.
//
// Buckets are half-open: Lower <= imc < Upper. A value sitting exactly on a
// boundary belongs to the higher bucket (25.0 is Sobrepeso).
type Category struct {
	Name        string  `json:"name"`
	Range       string  `json:"range"`
	Description string  `json:"description"`
	Lower       float64 `json:"-"`
	Upper       float64 `json:"-"`
}

// Category names as stored in records.
const (
	Underweight = "Abaixo do Peso"
	Normal      = "Peso Normal"
	Overweight  = "Sobrepeso"
	ObesityI    = "Obesidade Grau I"
	ObesityII   = "Obesidade Grau II"
	ObesityIII  = "Obesidade Grau III"
)

// table is ordered by ascending Lower and covers the whole real line.
var table = []Category{
	{
		Name:        Underweight,
		Range:       "Abaixo de 18,5",
		Description: "Peso abaixo do recomendado para sua altura",
		Lower:       math.Inf(-1),
		Upper:       18.5,
	},
	{
		Name:        Normal,
		Range:       "Entre 18,5 e 24,9",
		Description: "Peso saudável para sua altura",
		Lower:       18.5,
		Upper:       25,
	},
	{
		Name:        Overweight,
		Range:       "Entre 25 e 29,9",
		Description: "Peso acima do recomendado",
		Lower:       25,
		Upper:       30,
	},
	{
		Name:        ObesityI,
		Range:       "Entre 30 e 34,9",
		Description: "Obesidade leve",
		Lower:       30,
		Upper:       35,
	},
	{
		Name:        ObesityII,
		Range:       "Entre 35 e 39,9",
		Description: "Obesidade moderada",
		Lower:       35,
		Upper:       40,
	},
	{
		Name:        ObesityIII,
		Range:       "Maior que 40",
		Description: "Obesidade grave",
		Lower:       40,
		Upper:       math.Inf(1),
	},
}

// Classify returns the bucket imc falls into. It is total: NaN lands in the
// lowest bucket, though Compute never produces one.
func Classify(imc float64) Category {
	for i := len(table) - 1; i > 0; i-- {
		if imc >= table[i].Lower {
			return table[i]
		}
	}
	return table[0]
}

// Categories returns a copy of the table in ascending order.
func Categories() []Category {
	out := make([]Category, len(table))
	copy(out, table)
	return out
}

// CategoryByName finds a bucket by its label, ignoring case.
func CategoryByName(name string) (Category, bool) {
	for _, c := range table {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Category{}, false
}

// Contains reports whether imc falls inside c.
func (c Category) Contains(imc float64) bool {
	return imc >= c.Lower && imc < c.Upper
}
