package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinels wrapped by ValidationError so callers can branch with errors.Is.
var (
	ErrMissingFields = errors.New("Please fill all fields")
	ErrInvalidPrice  = errors.New("price must be a non-negative amount")
	ErrInvalidQuota  = errors.New("quota must be a non-negative whole number")
	ErrInvalidType   = errors.New("type must be FIBERNET, COPPER or OTHER")
)

// ValidationError reports why a Draft was refused. The store is never
// touched when one is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil || e.Err == nil {
		return "plan: invalid draft"
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Draft carries the raw add-form fields exactly as typed.
type Draft struct {
	Name  string
	Price string
	Quota string
	Type  string
}

// Validate checks the draft and returns the normalized plan it describes.
// The returned plan has no ID and is always active.
func (d Draft) Validate() (Plan, error) {
	name := strings.TrimSpace(d.Name)
	price := strings.TrimSpace(d.Price)
	quota := strings.TrimSpace(d.Quota)

	switch {
	case name == "":
		return Plan{}, &ValidationError{Field: "name", Err: ErrMissingFields}
	case price == "":
		return Plan{}, &ValidationError{Field: "price", Err: ErrMissingFields}
	case quota == "":
		return Plan{}, &ValidationError{Field: "quota", Err: ErrMissingFields}
	}

	parsedPrice, err := decimal.NewFromString(price)
	if err != nil || CheckPrice(parsedPrice) != nil {
		return Plan{}, &ValidationError{Field: "price", Err: ErrInvalidPrice}
	}
	parsedQuota, err := strconv.ParseInt(quota, 10, 64)
	if err != nil || parsedQuota < 0 {
		return Plan{}, &ValidationError{Field: "quota", Err: ErrInvalidQuota}
	}

	kind := DefaultType
	if strings.TrimSpace(d.Type) != "" {
		kind, err = ParseType(d.Type)
		if err != nil {
			return Plan{}, &ValidationError{Field: "type", Err: ErrInvalidType}
		}
	}

	return Plan{
		Name:   name,
		Type:   kind,
		Price:  parsedPrice,
		Quota:  parsedQuota,
		Active: true,
	}, nil
}

// FieldError formats a ValidationError for inline display, naming the field
// unless the message already covers every field.
func FieldError(err error) string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	if errors.Is(verr, ErrMissingFields) {
		return verr.Error()
	}
	return fmt.Sprintf("%s: %s", verr.Field, verr.Error())
}
