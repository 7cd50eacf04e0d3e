package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/union-tracker/internal/pkg/errors"
)

type unionBody struct {
	CompanyName string   `json:"companyName" validate:"required,max=100"`
	Demands     []string `json:"demands" validate:"required,min=1,max=10"`
	Source      []string `json:"source,omitempty" validate:"omitempty,dive,sourceurl"`
	Address     string   `json:"address" validate:"required"`
	Note        string   `json:"note" validate:"max=5"`
}

func TestIsSourceURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://www.example.co.uk/news?id=1&x=y",
		"https://sub.example.org/path/to#frag",
	}
	for _, s := range valid {
		assert.True(t, IsSourceURL(s), s)
	}

	invalid := []string{
		"ftp://example.com",
		"example.com",
		"https://localhost",
		"https://",
		"",
	}
	for _, s := range invalid {
		assert.False(t, IsSourceURL(s), s)
	}
}

func TestValidate_OK(t *testing.T) {
	err := Validate(&unionBody{
		CompanyName: "Acme",
		Demands:     []string{"pay"},
		Source:      []string{"https://example.com"},
		Address:     "1 Main St",
	})
	assert.NoError(t, err)
}

func TestValidate_Messages(t *testing.T) {
	err := Validate(&unionBody{
		CompanyName: strings.Repeat("x", 101),
		Demands:     make([]string, 11),
		Source:      []string{"https://example.com", "nope", "also-nope"},
		Note:        "too long",
	})
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindValidationFailed, appErr.Kind)

	msg := appErr.Message
	assert.Contains(t, msg, "Company name can not be more than 100 characters")
	assert.Contains(t, msg, "Cannot have more than 10 demands")
	assert.Contains(t, msg, "Please add an address")
	assert.Contains(t, msg, "note can not be more than 5")
	// Two bad sources still produce one message.
	assert.Equal(t, 1, strings.Count(msg, "Please use a valid URL with HTTP or HTTPS"))
}

func TestValidate_Required(t *testing.T) {
	err := Validate(&unionBody{})
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "Please add a company name")
	assert.Contains(t, appErr.Message, "Please add union demands")
}
