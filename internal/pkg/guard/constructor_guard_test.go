package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("should pass for a guard created through the constructor", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		assert.NoError(t, g.Validate(errors.New("not constructed")))
		assert.NoError(t, g.Validate(nil))
	})

	t.Run("should return the supplied error for a zero-value guard", func(t *testing.T) {
		var g guard.ConstructorGuard
		wantErr := errors.New("command must be created via its constructor")

		err := g.Validate(wantErr)

		require.Error(t, err)
		assert.Equal(t, wantErr, err)
	})

	t.Run("should fall back to the default error when none is supplied", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_Embedding(t *testing.T) {
	errRequestNotConstructed := errors.New("request must be created via newRequest")

	type request struct {
		target string
		guard  guard.ConstructorGuard
	}

	newRequest := func(target string) (request, error) {
		if target == "" {
			return request{}, errors.New("target is required")
		}
		return request{target: target, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should mark objects built through their constructor as valid", func(t *testing.T) {
		req, err := newRequest("delivered")

		require.NoError(t, err)
		assert.NoError(t, req.guard.Validate(errRequestNotConstructed))
	})

	t.Run("should catch raw struct initialization", func(t *testing.T) {
		req := request{target: "delivered"}

		err := req.guard.Validate(errRequestNotConstructed)

		assert.Equal(t, errRequestNotConstructed, err)
	})
}
