// Package validation provides input validation for records, categories,
// and accounts.
package validation

import (
	"fmt"
	"strings"
)

// Roles an account may carry. An absent role reads as RoleUser.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidationError represents a single failed rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates rule failures across chained checks.
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Required validates that a field is not empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "is required",
		})
	}
	return v
}

// MinLength validates minimum string length.
func (v *Validator) MinLength(field, value string, min int) *Validator {
	if len(strings.TrimSpace(value)) < min {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", min),
		})
	}
	return v
}

// MaxLength validates maximum string length.
func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be no more than %d characters", max),
		})
	}
	return v
}

// OneOf validates that a non-empty value is among the allowed set.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	})
	return v
}

// URL validates a rough url shape. Bare hostnames are allowed, the check
// only rejects embedded whitespace.
func (v *Validator) URL(field, value string) *Validator {
	if value != "" && strings.ContainsAny(value, " \t\n") {
		v.errors = append(v.errors, ValidationError{
			Field:   field,
			Message: "must not contain whitespace",
		})
	}
	return v
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// ErrorMessages returns error messages as strings.
func (v *Validator) ErrorMessages() []string {
	messages := make([]string, len(v.errors))
	for i, err := range v.errors {
		messages[i] = err.Error()
	}
	return messages
}

// FirstError returns the first error message or empty string if no errors.
func (v *Validator) FirstError() string {
	if len(v.errors) > 0 {
		return v.errors[0].Error()
	}
	return ""
}

// RecordRequest represents a password record for validation.
type RecordRequest struct {
	Title      string `json:"title"`
	Username   string `json:"username"`
	Secret     string `json:"secret"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
	CategoryID string `json:"categoryId"`
}

// ValidateRecord validates a password record request.
func ValidateRecord(record RecordRequest) *Validator {
	v := NewValidator()

	v.Required("title", record.Title).
		MaxLength("title", record.Title, 255)

	v.MaxLength("username", record.Username, 255)

	// Secret is optional on updates; when present it must fit the column.
	if record.Secret != "" {
		v.MaxLength("secret", record.Secret, 1000)
	}

	v.URL("url", record.URL).
		MaxLength("url", record.URL, 2048)

	v.MaxLength("notes", record.Notes, 2000)

	return v
}

// CategoryRequest represents a category for validation.
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ValidateCategory validates a category request.
func ValidateCategory(category CategoryRequest) *Validator {
	v := NewValidator()

	v.Required("name", category.Name).
		MaxLength("name", category.Name, 100)

	v.MaxLength("color", category.Color, 20)
	v.MaxLength("icon", category.Icon, 50)

	return v
}

// AccountRequest represents an account for validation.
type AccountRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// ValidateAccountCreation validates an account creation request.
func ValidateAccountCreation(account AccountRequest) *Validator {
	v := NewValidator()

	v.Required("username", account.Username).
		MinLength("username", account.Username, 3).
		MaxLength("username", account.Username, 50)

	v.MaxLength("displayName", account.DisplayName, 100)

	v.Required("password", account.Password).
		MinLength("password", account.Password, 8).
		MaxLength("password", account.Password, 1000)

	v.OneOf("role", account.Role, RoleUser, RoleAdmin, RoleSuperAdmin)

	return v
}
