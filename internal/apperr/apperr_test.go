package apperr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := Validation(UserExists)
	require.Contains(t, err.Error(), "Invalid data")
	require.Contains(t, err.Error(), CodeUnprocessableEntity)
	require.Contains(t, err.Error(), "User already exists")
}

func TestWithExplainOverwritesOnCollision(t *testing.T) {
	err := Generic(map[string]string{"non_field": "first"})
	err.WithExplain(map[string]string{"non_field": "second", "email": "taken"})

	require.Equal(t, "second", err.Explain["non_field"])
	require.Equal(t, "taken", err.Explain["email"])
}

func TestConstructorsDoNotShareState(t *testing.T) {
	first := Validation(UserExists)
	first.WithExplain(map[string]string{"extra": "x"})

	second := Validation(UserExists)
	require.NotContains(t, second.Explain, "extra")
}
