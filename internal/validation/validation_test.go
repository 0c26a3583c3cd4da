package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantMsg string
	}{
		{name: "valid", email: "demo@example.com", wantMsg: ""},
		{name: "empty", email: "", wantMsg: "Email is required"},
		{name: "missing at", email: "demo.example.com", wantMsg: "Please enter a valid email address"},
		{name: "missing tld", email: "demo@example", wantMsg: "Please enter a valid email address"},
		{name: "whitespace in local part", email: "de mo@example.com", wantMsg: "Please enter a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{name: "valid", password: "password123", wantMsg: ""},
		{name: "exactly six chars", password: "abcdef", wantMsg: ""},
		{name: "six multibyte chars", password: "pässwö", wantMsg: ""},
		{name: "empty", password: "", wantMsg: "Password is required"},
		{name: "too short", password: "abc12", wantMsg: "Password must be at least 6 characters"},
		{name: "five multibyte chars", password: "päsčé", wantMsg: "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "valid", value: "Demo User", wantMsg: ""},
		{name: "two chars", value: "Al", wantMsg: ""},
		{name: "empty", value: "", wantMsg: "Name is required"},
		{name: "single char", value: "A", wantMsg: "Name must be at least 2 characters"},
		{name: "single multibyte char", value: "Å", wantMsg: "Name must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name(tt.value)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestTicketTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantMsg string
	}{
		{name: "valid", title: "Broken login button", wantMsg: ""},
		{name: "exactly max length", title: strings.Repeat("a", 100), wantMsg: ""},
		{name: "exactly max length multibyte", title: strings.Repeat("é", 100), wantMsg: ""},
		{name: "empty", title: "", wantMsg: "Title is required"},
		{name: "whitespace only", title: "   ", wantMsg: "Title is required"},
		{name: "over max length", title: strings.Repeat("a", 101), wantMsg: "Title must not exceed 100 characters"},
		{name: "over max length multibyte", title: strings.Repeat("é", 101), wantMsg: "Title must not exceed 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TicketTitle(tt.title)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestTicketStatus(t *testing.T) {
	for _, status := range domain.TicketStatuses() {
		assert.NoError(t, TicketStatus(string(status)))
	}

	err := TicketStatus("")
	require.Error(t, err)
	assert.Equal(t, "Status is required", err.Error())

	err = TicketStatus("archived")
	require.Error(t, err)
	assert.Equal(t, "Status must be one of: open, in_progress, closed", err.Error())
}

func TestTicketDescription(t *testing.T) {
	assert.NoError(t, TicketDescription(""))
	assert.NoError(t, TicketDescription(strings.Repeat("a", 500)))
	assert.NoError(t, TicketDescription(strings.Repeat("é", 500)))

	err := TicketDescription(strings.Repeat("a", 501))
	require.Error(t, err)
	assert.Equal(t, "Description must not exceed 500 characters", err.Error())

	err = TicketDescription(strings.Repeat("é", 501))
	require.Error(t, err)
	assert.Equal(t, "Description must not exceed 500 characters", err.Error())
}

func TestTicketPriority(t *testing.T) {
	for _, priority := range []string{"low", "medium", "high"} {
		assert.NoError(t, TicketPriority(priority))
	}

	// Priority is optional.
	assert.NoError(t, TicketPriority(""))

	err := TicketPriority("urgent")
	require.Error(t, err)
	assert.Equal(t, "Priority must be one of: low, medium, high", err.Error())
}

func TestLoginFormCollectsAllErrors(t *testing.T) {
	errs := LoginForm("", "")
	require.Len(t, errs, 2)
	assert.Equal(t, domain.ValidationError{Field: "email", Message: "Email is required"}, errs[0])
	assert.Equal(t, domain.ValidationError{Field: "password", Message: "Password is required"}, errs[1])

	assert.Empty(t, LoginForm("demo@example.com", "password123"))
}

func TestSignupForm(t *testing.T) {
	tests := []struct {
		name            string
		inputName       string
		email           string
		password        string
		confirmPassword string
		wantFields      []string
	}{
		{
			name:            "valid",
			inputName:       "Demo User",
			email:           "demo@example.com",
			password:        "password123",
			confirmPassword: "password123",
			wantFields:      nil,
		},
		{
			name:            "everything missing",
			inputName:       "",
			email:           "",
			password:        "",
			confirmPassword: "x",
			wantFields:      []string{"name", "email", "password", "confirmPassword"},
		},
		{
			name:            "mismatched confirmation",
			inputName:       "Demo User",
			email:           "demo@example.com",
			password:        "password123",
			confirmPassword: "password124",
			wantFields:      []string{"confirmPassword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := SignupForm(tt.inputName, tt.email, tt.password, tt.confirmPassword)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			if tt.wantFields == nil {
				assert.Empty(t, fields)
				return
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestTicketFormCollectsAllErrors(t *testing.T) {
	errs := TicketForm("", "bogus", strings.Repeat("a", 501), "urgent")
	require.Len(t, errs, 4)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "status", errs[1].Field)
	assert.Equal(t, "description", errs[2].Field)
	assert.Equal(t, "priority", errs[3].Field)

	assert.Empty(t, TicketForm("Broken login button", "open", "", ""))
	assert.Empty(t, TicketForm("Broken login button", "open", "", "high"))
}
