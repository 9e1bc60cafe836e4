package validation

import (
	"strings"
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	v := NewValidator().Required("title", "")
	if !v.HasErrors() {
		t.Error("Empty value should fail Required")
	}
	if !strings.Contains(v.FirstError(), "title") {
		t.Errorf("Error should name the field, got %q", v.FirstError())
	}

	v = NewValidator().Required("title", "   ")
	if !v.HasErrors() {
		t.Error("Whitespace-only value should fail Required")
	}

	v = NewValidator().Required("title", "ok")
	if v.HasErrors() {
		t.Errorf("Non-empty value should pass, got %v", v.ErrorMessages())
	}
}

func TestValidatorLengths(t *testing.T) {
	v := NewValidator().MinLength("username", "ab", 3)
	if !v.HasErrors() {
		t.Error("Short value should fail MinLength")
	}

	v = NewValidator().MaxLength("username", strings.Repeat("x", 51), 50)
	if !v.HasErrors() {
		t.Error("Long value should fail MaxLength")
	}

	v = NewValidator().MinLength("username", "abc", 3).MaxLength("username", "abc", 50)
	if v.HasErrors() {
		t.Errorf("Valid length should pass, got %v", v.ErrorMessages())
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := NewValidator().OneOf("role", "admin", RoleUser, RoleAdmin, RoleSuperAdmin)
	if v.HasErrors() {
		t.Errorf("Allowed value should pass, got %v", v.ErrorMessages())
	}

	v = NewValidator().OneOf("role", "wizard", RoleUser, RoleAdmin, RoleSuperAdmin)
	if !v.HasErrors() {
		t.Error("Disallowed value should fail OneOf")
	}

	// Empty is allowed; Required handles presence separately.
	v = NewValidator().OneOf("role", "", RoleUser, RoleAdmin)
	if v.HasErrors() {
		t.Error("Empty value should pass OneOf")
	}
}

func TestValidatorURL(t *testing.T) {
	for _, ok := range []string{"", "example.com", "https://example.com/path?q=1"} {
		if v := NewValidator().URL("url", ok); v.HasErrors() {
			t.Errorf("URL %q should pass, got %v", ok, v.ErrorMessages())
		}
	}
	if v := NewValidator().URL("url", "has space.com"); !v.HasErrors() {
		t.Error("URL with whitespace should fail")
	}
}

func TestValidateRecord(t *testing.T) {
	v := ValidateRecord(RecordRequest{Title: "Gmail", Username: "alice", Secret: "hunter2", URL: "mail.google.com"})
	if v.HasErrors() {
		t.Errorf("Valid record should pass, got %v", v.ErrorMessages())
	}

	v = ValidateRecord(RecordRequest{Title: ""})
	if !v.HasErrors() {
		t.Error("Record without a title should fail")
	}

	v = ValidateRecord(RecordRequest{Title: strings.Repeat("x", 256)})
	if !v.HasErrors() {
		t.Error("Over-long title should fail")
	}

	// Empty secret is allowed; updates use it to keep the stored one.
	v = ValidateRecord(RecordRequest{Title: "Gmail", Secret: ""})
	if v.HasErrors() {
		t.Errorf("Empty secret should pass, got %v", v.ErrorMessages())
	}

	v = ValidateRecord(RecordRequest{Title: "Gmail", Secret: strings.Repeat("x", 1001)})
	if !v.HasErrors() {
		t.Error("Over-long secret should fail")
	}
}

func TestValidateCategory(t *testing.T) {
	v := ValidateCategory(CategoryRequest{Name: "Work", Color: "#FF0000", Icon: "💼"})
	if v.HasErrors() {
		t.Errorf("Valid category should pass, got %v", v.ErrorMessages())
	}

	v = ValidateCategory(CategoryRequest{Name: ""})
	if !v.HasErrors() {
		t.Error("Category without a name should fail")
	}

	v = ValidateCategory(CategoryRequest{Name: strings.Repeat("x", 101)})
	if !v.HasErrors() {
		t.Error("Over-long category name should fail")
	}
}

func TestValidateAccountCreation(t *testing.T) {
	v := ValidateAccountCreation(AccountRequest{Username: "alice", Password: "password123", Role: RoleUser})
	if v.HasErrors() {
		t.Errorf("Valid account should pass, got %v", v.ErrorMessages())
	}

	cases := []AccountRequest{
		{Username: "al", Password: "password123"},              // username too short
		{Username: "alice", Password: "short"},                 // password too short
		{Username: "alice", Password: "password123", Role: "wizard"}, // bad role
	}
	for i, c := range cases {
		if v := ValidateAccountCreation(c); !v.HasErrors() {
			t.Errorf("Case %d should fail: %+v", i, c)
		}
	}
}

func TestErrorAccessors(t *testing.T) {
	v := NewValidator().Required("a", "").Required("b", "")
	if len(v.Errors()) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(v.Errors()))
	}
	if len(v.ErrorMessages()) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(v.ErrorMessages()))
	}
	if v.FirstError() != v.Errors()[0].Error() {
		t.Error("FirstError should match the first accumulated error")
	}

	empty := NewValidator()
	if empty.FirstError() != "" {
		t.Error("FirstError on a clean validator should be empty")
	}
}
