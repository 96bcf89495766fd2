package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Profile fields
	"Name":       "Name",
	"Phone":      "Phone Number",
	"Location":   "Location",
	"Bio":        "Bio",
	"Skills":     "Skills",
	"Experience": "Experience",
	"Education":  "Education",

	// Auth fields
	"Email":    "Email",
	"Password": "Password",

	// Job fields
	"Title":        "Job Title",
	"Department":   "Department",
	"Description":  "Description",
	"Requirements": "Requirements",
}

// messageFor builds a readable message for one failed validation tag
func messageFor(fe validator.FieldError) string {
	label := FieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "valid_name":
		return fmt.Sprintf("%s contains invalid characters", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// FormatErrors turns validator errors into one user-facing message
func FormatErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, messageFor(fe))
	}
	return strings.Join(messages, "; ")
}
