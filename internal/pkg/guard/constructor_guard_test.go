package guard_test

import (
	"errors"
	"testing"

	"fieldservice/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be
// used in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Signature struct {
		url   string
		guard guard.ConstructorGuard
	}

	var errSignatureNotConstructed = errors.New("Signature must be created via NewSignature")

	newSignature := func(url string) (Signature, error) {
		if url == "" {
			return Signature{}, errors.New("url is required")
		}
		return Signature{
			url:   url,
			guard: guard.NewConstructorGuard(),
		}, nil
	}

	validateSignature := func(s Signature) error {
		return s.guard.Validate(errSignatureNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		sig, err := newSignature("https://storage.example.com/signatures/abc.png")

		// Then
		require.NoError(t, err)
		require.NoError(t, validateSignature(sig))
		assert.Equal(t, "https://storage.example.com/signatures/abc.png", sig.url)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var sig Signature // zero value

		// When
		err := validateSignature(sig)

		// Then
		require.Error(t, err)
		assert.Equal(t, errSignatureNotConstructed, err)
	})
}
