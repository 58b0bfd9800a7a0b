package errors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

var (
	hexColorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidationError represents a field-specific validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Validator collects tool argument validation errors
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(field, rule, message string, value ...interface{}) {
	var valueStr string
	if len(value) > 0 {
		valueStr = fmt.Sprintf("%v", value[0])
	}

	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   valueStr,
		Rule:    rule,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// GetErrors returns all validation errors
func (v *Validator) GetErrors() []ValidationError {
	return v.errors
}

// ToAppError converts validation errors to an AppError, or nil when there are none
func (v *Validator) ToAppError() error {
	if !v.HasErrors() {
		return nil
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}

	appErr := NewError(ErrInvalidInput, "Validation failed")
	appErr.Details = strings.Join(messages, "; ")
	appErr.Field = v.errors[0].Field
	return appErr.WithContext("validation_errors", v.errors)
}

// RequiredField validates that a field is not empty
func (v *Validator) RequiredField(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "required", "Field is required", value)
	}
	return v
}

// MaxLength validates maximum string length
func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.AddError(field, "max_length",
			fmt.Sprintf("Must be at most %d characters long", max), value)
	}
	return v
}

// ValidatePositiveInt validates that a value is a positive integer
func (v *Validator) ValidatePositiveInt(field string, value interface{}) *Validator {
	var intVal int
	var err error

	switch val := value.(type) {
	case int:
		intVal = val
	case string:
		intVal, err = strconv.Atoi(val)
		if err != nil {
			v.AddError(field, "integer_format", "Must be a valid integer", value)
			return v
		}
	case float64:
		intVal = int(val)
	default:
		v.AddError(field, "integer_format", "Must be a valid integer", value)
		return v
	}

	if intVal <= 0 {
		v.AddError(field, "positive_integer", "Must be a positive integer", value)
	}
	return v
}

// ValidateEnum validates that a value is in a list of allowed values
func (v *Validator) ValidateEnum(field, value string, allowedValues []string) *Validator {
	if value == "" {
		return v
	}

	for _, allowed := range allowedValues {
		if value == allowed {
			return v
		}
	}

	v.AddError(field, "enum",
		fmt.Sprintf("Must be one of: %s", strings.Join(allowedValues, ", ")), value)
	return v
}

// ValidateDate validates a YYYY-MM-DD date
func (v *Validator) ValidateDate(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v.AddError(field, "date_format", "Must be a date in YYYY-MM-DD format", value)
	}
	return v
}

// ValidateColor validates a hex color with or without the leading '#'
func (v *Validator) ValidateColor(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !hexColorRegex.MatchString(value) {
		v.AddError(field, "color_format", "Must be a hex color such as #FF0000", value)
	}
	return v
}

// ValidateGitLabUsername validates GitLab username format
func (v *Validator) ValidateGitLabUsername(field, username string) *Validator {
	if username == "" {
		return v
	}

	if len(username) > 100 {
		v.AddError(field, "username_length", "Username too long (max 100 characters)", username)
	}

	if !usernameRegex.MatchString(username) {
		v.AddError(field, "username_format",
			"Username can only contain letters, numbers, underscores, hyphens, and dots", username)
	}

	return v
}

// ValidateGitBranchName validates Git branch name format
func (v *Validator) ValidateGitBranchName(field, branchName string) *Validator {
	if branchName == "" {
		return v
	}

	if len(branchName) > 255 {
		v.AddError(field, "branch_length", "Branch name too long (max 255 characters)", branchName)
	}

	if strings.HasPrefix(branchName, "-") || strings.HasPrefix(branchName, ".") {
		v.AddError(field, "branch_prefix", "Branch name cannot start with - or .", branchName)
	}

	if strings.Contains(branchName, "..") {
		v.AddError(field, "branch_dots", "Branch name cannot contain consecutive dots", branchName)
	}

	invalidChars := []string{" ", "~", "^", ":", "?", "*", "[", "]", "\\"}
	for _, char := range invalidChars {
		if strings.Contains(branchName, char) {
			v.AddError(field, "branch_chars",
				fmt.Sprintf("Branch name cannot contain '%s'", char), branchName)
			break
		}
	}

	return v
}

// NormalizeColor returns an uppercase #RRGGBB color, expanding the short form
func NormalizeColor(value string) string {
	c := strings.ToUpper(strings.TrimPrefix(value, "#"))
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	return "#" + c
}

// ClampPerPage bounds a page size to 1..MaxPerPage, using DefaultPerPage for zero
func ClampPerPage(perPage int) int {
	switch {
	case perPage == 0:
		return DefaultPerPage
	case perPage < 1:
		return 1
	case perPage > MaxPerPage:
		return MaxPerPage
	default:
		return perPage
	}
}
