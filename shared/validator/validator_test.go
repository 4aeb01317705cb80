package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidate(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	fields := v.Validate(samplePayload{Email: "alice@example.com", Password: "longenough"})
	assert.Nil(t, fields)

	fields = v.Validate(samplePayload{Email: "not-an-email", Password: "short"})
	require.NotNil(t, fields)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}
