// Package validation provides input validation for recipes and tool
// configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// errors.ErrInvalidInput with per-field details.
//
// # Struct Tag Validation
//
//	type Step struct {
//	    Op    string `json:"op" validate:"required,oneof=where select take"`
//	    Count int    `json:"count" validate:"gte=0"`
//	}
//	err := validation.Validate(step)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("field", step.Field).OneOf("dir", dir, []string{"asc", "desc"})
//	err := v.Validate()
package validation
