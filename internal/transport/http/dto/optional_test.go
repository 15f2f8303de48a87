package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentNullValue(t *testing.T) {
	type patch struct {
		Description Optional[string] `json:"description"`
	}

	t.Run("absent_key", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Description.Set)
		assert.False(t, p.Description.Valid)
	})

	t.Run("explicit_null", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &p))
		assert.True(t, p.Description.Set)
		assert.False(t, p.Description.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"description":"hello"}`), &p))
		assert.True(t, p.Description.Set)
		assert.True(t, p.Description.Valid)
		assert.Equal(t, "hello", p.Description.Value)
	})

	t.Run("wrong_type_errors", func(t *testing.T) {
		var p patch
		assert.Error(t, json.Unmarshal([]byte(`{"description":42}`), &p))
	})
}

func TestOptional_Ptr(t *testing.T) {
	t.Run("value_yields_pointer", func(t *testing.T) {
		o := Optional[int]{Set: true, Valid: true, Value: 5}
		p := o.Ptr()
		require.NotNil(t, p)
		assert.Equal(t, 5, *p)
	})

	t.Run("absent_and_null_yield_nil", func(t *testing.T) {
		assert.Nil(t, Optional[int]{}.Ptr())
		assert.Nil(t, Optional[int]{Set: true}.Ptr())
	})
}
