package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesNumbersAndStrings(t *testing.T) {
	var items []Item
	err := json.Unmarshal([]byte(`[
		{"id": 7, "name": "a", "description": "b"},
		{"id": "f3c1", "name": "c", "description": "d"}
	]`), &items)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ID("7"), items[0].ID)
	assert.Equal(t, ID("f3c1"), items[1].ID)
}

func TestIDEncoding(t *testing.T) {
	b, err := json.Marshal(Item{ID: "12", Name: "n", Description: "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":12,"name":"n","description":"d"}`, string(b))

	b, err = json.Marshal(ID("abc-1"))
	require.NoError(t, err)
	assert.Equal(t, `"abc-1"`, string(b))

	// Integers that are not in canonical form stay strings.
	for _, id := range []ID{"007", "+5", "-0"} {
		b, err := json.Marshal(Item{ID: id, Name: "n", Description: "d"})
		require.NoError(t, err, "id %q", id)
		var back Item
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, id, back.ID)
	}

	b, err = json.Marshal(ID("-3"))
	require.NoError(t, err)
	assert.Equal(t, `-3`, string(b))
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"valid", Draft{Name: "Widget", Description: "A gadget"}, ""},
		{"blank name", Draft{Name: "   ", Description: "A gadget"}, "name"},
		{"empty description", Draft{Name: "Widget"}, "description"},
		{"both blank", Draft{}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestItemDraft(t *testing.T) {
	it := Item{ID: "1", Name: "X", Description: "Y"}
	assert.Equal(t, Draft{Name: "X", Description: "Y"}, it.Draft())
}
