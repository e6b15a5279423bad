package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Type is the category a plan is sold under.
type Type string

const (
	TypeFibernet Type = "FIBERNET"
	TypeCopper   Type = "COPPER"
	TypeOther    Type = "OTHER"
)

// DefaultType is preselected in the add form and used when a draft leaves
// the type blank.
const DefaultType = TypeFibernet

var knownTypes = []Type{TypeFibernet, TypeCopper, TypeOther}

// Types lists the recognised plan types in display order.
func Types() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// ParseType maps user input onto a known Type, ignoring case and padding.
func ParseType(value string) (Type, error) {
	candidate := Type(strings.ToUpper(strings.TrimSpace(value)))
	for _, t := range knownTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("plan: unknown type %q", value)
}

// Next returns the type that follows t in display order, wrapping around.
func (t Type) Next() Type {
	for i, known := range knownTypes {
		if known == t {
			return knownTypes[(i+1)%len(knownTypes)]
		}
	}
	return DefaultType
}

// Prices are capped so that rendering them with fixed decimals stays cheap;
// decimal accepts exponents up to int32 otherwise.
const (
	maxPriceIntDigits = 12
	maxPriceScale     = 6
)

// CheckPrice reports whether d is a usable plan price: non-negative, at most
// maxPriceIntDigits whole digits and maxPriceScale fractional digits. It only
// inspects the coefficient and exponent, so it never rescales d.
func CheckPrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("price must be >= 0")
	}
	exp := int(d.Exponent())
	if -exp > maxPriceScale {
		return fmt.Errorf("price has more than %d decimal places", maxPriceScale)
	}
	if d.NumDigits()+exp > maxPriceIntDigits {
		return fmt.Errorf("price exceeds %d whole digits", maxPriceIntDigits)
	}
	return nil
}

// Plan is a single subscription offering.
type Plan struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Type   Type            `json:"type"`
	Price  decimal.Decimal `json:"price"`
	Quota  int64           `json:"quota"`
	Active bool            `json:"active"`
}

// PriceLabel renders the price with two decimals, e.g. "59.99".
func (p Plan) PriceLabel() string {
	return p.Price.StringFixed(2)
}

// ActiveLabel renders the active flag the way the table shows it.
func (p Plan) ActiveLabel() string {
	if p.Active {
		return "Yes"
	}
	return "No"
}

// ToggleLabel names the action that Toggle would perform on p.
func (p Plan) ToggleLabel() string {
	if p.Active {
		return "Deactivate"
	}
	return "Activate"
}

func (p Plan) check() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return err
	}
	if err := CheckPrice(p.Price); err != nil {
		return err
	}
	if p.Quota < 0 {
		return fmt.Errorf("quota must be >= 0")
	}
	return nil
}
