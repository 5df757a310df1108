package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecListEditing(t *testing.T) {
	sl := NewSpecList()
	sl.Add()
	sl.Add()
	require.Equal(t, 2, sl.Len())

	require.NoError(t, sl.SetKey(0, "Connectivity"))
	require.NoError(t, sl.SetValue(0, "Bluetooth 5.1"))
	require.NoError(t, sl.Remove(1))

	entries := sl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Connectivity", entries[0].Key)
}

func TestFoldTrimsAndSkipsBlanks(t *testing.T) {
	sl := NewSpecList()
	sl.Set([]SpecEntry{
		{Key: "  Weight ", Value: " 280g "},
		{Key: "", Value: "orphan value"},
		{Key: "orphan key", Value: "   "},
		{Key: "Color", Value: "Midnight Black"},
	})

	folded := sl.Fold()
	assert.Equal(t, map[string]string{
		"Weight": "280g",
		"Color":  "Midnight Black",
	}, folded)
}

func TestFoldLastWriteWins(t *testing.T) {
	sl := NewSpecList()
	sl.Set([]SpecEntry{
		{Key: "Battery", Value: "1000mAh"},
		{Key: "Battery", Value: "1560mAh"},
	})

	assert.Equal(t, map[string]string{"Battery": "1560mAh"}, sl.Fold())
}

func TestFoldEmptyListIsNil(t *testing.T) {
	sl := NewSpecList()
	sl.Add()
	assert.Nil(t, sl.Fold(), "blank rows stay editable but never reach the payload")
}
