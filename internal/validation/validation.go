// Package validation holds the pure form-checking rules. Field validators
// return nil or a user-facing message; form validators collect every
// failing field instead of stopping at the first, so the presentation
// layer can display them together.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// Limits count characters, not bytes.
const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
	minPasswordLength    = 6
	minNameLength        = 2
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email requires a non-empty local@domain.tld shape.
func Email(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

func Password(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}

func Name(name string) error {
	if name == "" {
		return errors.New("Name is required")
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return errors.New("Name must be at least 2 characters")
	}
	return nil
}

// TicketTitle rejects blank (after trimming) and over-long titles.
func TicketTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return errors.New("Title must not exceed 100 characters")
	}
	return nil
}

func TicketStatus(status string) error {
	if status == "" {
		return errors.New("Status is required")
	}
	if !domain.TicketStatus(status).Valid() {
		return errors.New("Status must be one of: open, in_progress, closed")
	}
	return nil
}

// TicketDescription is optional but bounded.
func TicketDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return errors.New("Description must not exceed 500 characters")
	}
	return nil
}

// TicketPriority is optional; when present it must be a known value.
func TicketPriority(priority string) error {
	if priority == "" {
		return nil
	}
	if !domain.TicketPriority(priority).Valid() {
		return errors.New("Priority must be one of: low, medium, high")
	}
	return nil
}

// LoginForm validates credentials and returns all failing fields.
func LoginForm(email, password string) []domain.ValidationError {
	var errs []domain.ValidationError
	errs = appendFieldError(errs, "email", Email(email))
	errs = appendFieldError(errs, "password", Password(password))
	return errs
}

// SignupForm validates registration input, including the confirmation
// equality check, and returns all failing fields.
func SignupForm(name, email, password, confirmPassword string) []domain.ValidationError {
	var errs []domain.ValidationError
	errs = appendFieldError(errs, "name", Name(name))
	errs = appendFieldError(errs, "email", Email(email))
	errs = appendFieldError(errs, "password", Password(password))
	if password != confirmPassword {
		errs = append(errs, domain.ValidationError{Field: "confirmPassword", Message: "Passwords do not match"})
	}
	return errs
}

// TicketForm validates ticket input and returns all failing fields.
func TicketForm(title, status, description, priority string) []domain.ValidationError {
	var errs []domain.ValidationError
	errs = appendFieldError(errs, "title", TicketTitle(title))
	errs = appendFieldError(errs, "status", TicketStatus(status))
	errs = appendFieldError(errs, "description", TicketDescription(description))
	errs = appendFieldError(errs, "priority", TicketPriority(priority))
	return errs
}

func appendFieldError(errs []domain.ValidationError, field string, err error) []domain.ValidationError {
	if err == nil {
		return errs
	}
	return append(errs, domain.ValidationError{Field: field, Message: err.Error()})
}
