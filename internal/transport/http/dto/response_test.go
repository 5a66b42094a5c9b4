package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListResp(t *testing.T) {
	t.Run("nil_items_encode_as_empty_array", func(t *testing.T) {
		b, err := json.Marshal(NewListResp[int](nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":[],"total":0}`, string(b))
	})

	t.Run("total_matches_items", func(t *testing.T) {
		resp := NewListResp([]string{"a", "b"})
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, []string{"a", "b"}, resp.Items)
	})
}
