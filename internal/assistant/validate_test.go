package assistant_test

import (
	"testing"

	"folio-go/internal/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, assistant.IsValidEmail("user@example.com"))
	assert.True(t, assistant.IsValidEmail("a.b+c@sub.domain.fr"))

	assert.False(t, assistant.IsValidEmail("user@"))
	assert.False(t, assistant.IsValidEmail("user example.com"))
	assert.False(t, assistant.IsValidEmail(""))
	assert.False(t, assistant.IsValidEmail("user@domain"))
}

func TestValidateSubmissionRequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*assistant.ContactSubmission)
		field string
	}{
		{"empty name", func(s *assistant.ContactSubmission) { s.Name = "  " }, "name"},
		{"empty email", func(s *assistant.ContactSubmission) { s.Email = "" }, "email"},
		{"malformed email", func(s *assistant.ContactSubmission) { s.Email = "nope" }, "email"},
		{"empty message", func(s *assistant.ContactSubmission) { s.Message = "\n\t" }, "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := assistant.ContactSubmission{Name: "Jane", Email: "jane@example.com", Message: "hi"}
			tc.mut(&sub)

			_, err := assistant.ValidateSubmission(sub)
			var verr *assistant.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateSubmissionNormalizes(t *testing.T) {
	sub := assistant.ContactSubmission{
		Name:    "  Jane ",
		Email:   " jane@example.com ",
		Subject: "   ",
		Message: " hi ",
	}

	got, err := assistant.ValidateSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, assistant.DefaultSubject, got.Subject)
	assert.Equal(t, "hi", got.Message)
}
