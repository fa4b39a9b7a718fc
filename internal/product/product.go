// Package product defines the Product entity and its validation contract,
// independent of any storage backend or transport.
package product

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Product is the stored shape of a product. ID is assigned by the storage
// backend at insertion time and is immutable afterwards. Description is
// nullable and an absent description round-trips as JSON null.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// Input is the client-submitted shape of a product. Name and Price are
// pointers so a missing field and a zero value produce distinct errors.
type Input struct {
	Name        *string  `json:"name"        validate:"required,min=1"`
	Price       *float64 `json:"price"       validate:"required,gt=0"`
	Description *string  `json:"description"`
}

// FieldError is a single validation failure attached to the offending field.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an Input against the product contract. It returns nil when
// the input is valid, otherwise one FieldError per violated constraint.
// Pure: the input is never modified.
func (in Input) Validate() []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
	out := make([]FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, FieldError{
			Loc:  []string{"body", fe.Field()},
			Msg:  msgFor(fe),
			Type: typeFor(fe),
		})
	}
	return out
}

func msgFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	default:
		return "failed on rule: " + fe.Tag()
	}
}

func typeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value_error.missing"
	case "min":
		return "value_error.any_str.min_length"
	case "gt":
		return "value_error.number.not_gt"
	default:
		return "value_error"
	}
}
