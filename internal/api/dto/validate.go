package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and returns one message per failing
// field, phrased for the {"errors": [...]} envelope.
func Validate(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"Invalid request"}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.StructNamespace() {
	case "LoginRequest.Username":
		return "username is not a valid email"
	case "LoginRequest.Password":
		return "password must be a non-empty string"
	case "CreateTicketRequest.Title":
		return "Title is required"
	case "CreateTicketRequest.Category":
		return "Invalid category"
	case "CreateTicketRequest.Description":
		return "Description is required"
	case "AddReplyRequest.Text":
		return "Text block content is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
