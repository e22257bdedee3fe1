package kpi

import (
	"fmt"
	"strings"
)

// Perspective is one of the four balanced-scorecard categories.
type Perspective string

const (
	Financial           Perspective = "Financial"
	CustomerService     Perspective = "Customer & Service"
	Quality             Perspective = "Quality"
	EmployeeFulfillment Perspective = "Employee Fulfillment"
)

// Perspectives lists the categories in the order the dashboard renders them.
func Perspectives() []Perspective {
	return []Perspective{Financial, CustomerService, Quality, EmployeeFulfillment}
}

var perspectiveAliases = map[string]Perspective{
	"financial":            Financial,
	"finance":              Financial,
	"customer & service":   CustomerService,
	"customer and service": CustomerService,
	"customer":             CustomerService,
	"quality":              Quality,
	"employee fulfillment": EmployeeFulfillment,
	"employee":             EmployeeFulfillment,
}

// ParsePerspective resolves a perspective name, including the short
// "Customer" and "Employee" spellings used by flat exports.
func ParsePerspective(name string) (Perspective, error) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if p, ok := perspectiveAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPerspective, name)
}

func (p Perspective) Valid() bool {
	switch p {
	case Financial, CustomerService, Quality, EmployeeFulfillment:
		return true
	}
	return false
}

func (p Perspective) rank() int {
	for i, candidate := range Perspectives() {
		if candidate == p {
			return i
		}
	}
	return len(Perspectives())
}
