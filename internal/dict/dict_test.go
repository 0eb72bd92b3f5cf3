package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string {
	return &s
}

// keys walks the dictionary with the shared cursor
func keys(d *Dict) []string {
	var out []string
	for e := d.First(); e != nil; e = d.Next() {
		out = append(out, e.Key())
	}
	return out
}

func TestDict_InsertPrepends(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("a", strp("1")))
	require.NoError(t, d.Insert("b", strp("2")))
	require.NoError(t, d.Insert("c", nil))

	assert.Equal(t, []string{"c", "b", "a"}, keys(d))
	assert.Equal(t, 3, d.Len())

	v, ok := d.Find("c").Value()
	assert.False(t, ok, "entry inserted without value should report no value")
	assert.Empty(t, v)
}

func TestDict_InsertDoesNotDedup(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("k", strp("old")))
	require.NoError(t, d.Insert("k", strp("new")))

	assert.Equal(t, 2, d.Len())
	v, ok := d.Find("k").Value()
	require.True(t, ok)
	assert.Equal(t, "new", v, "Find should return the most recently inserted duplicate")
}

func TestDict_Upsert(t *testing.T) {
	tests := []struct {
		name      string
		initial   *string
		update    *string
		wantValue string
		wantSet   bool
	}{
		{"replace value", strp("1"), strp("2"), "2", true},
		{"clear value", strp("1"), nil, "", false},
		{"set value on key-only entry", nil, strp("x"), "x", true},
		{"empty string is a value", strp("1"), strp(""), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			require.NoError(t, d.Upsert("other", strp("o")))
			require.NoError(t, d.Upsert("k", tt.initial))
			require.NoError(t, d.Upsert("last", nil))
			before := d.Find("k")

			require.NoError(t, d.Upsert("k", tt.update))

			after := d.Find("k")
			assert.Same(t, before, after, "upsert must keep entry identity")
			assert.Equal(t, []string{"last", "k", "other"}, keys(d), "upsert must keep list position")
			v, ok := after.Value()
			assert.Equal(t, tt.wantSet, ok)
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, 3, d.Len())
		})
	}
}

func TestDict_Delete(t *testing.T) {
	d := New()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, d.Insert(k, strp(k)))
	}

	assert.True(t, d.Delete("b"))
	assert.Nil(t, d.Find("b"))
	assert.Equal(t, []string{"c", "a"}, keys(d))

	assert.True(t, d.Delete("c"), "deleting the head")
	assert.Equal(t, []string{"a"}, keys(d))

	assert.False(t, d.Delete("missing"))
	assert.Equal(t, 1, d.Len())
}

func TestDict_DeleteOnlyFirstDuplicate(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("k", strp("old")))
	require.NoError(t, d.Insert("k", strp("new")))

	require.True(t, d.Delete("k"))
	v, _ := d.Find("k").Value()
	assert.Equal(t, "old", v)
}

func TestDict_DeleteResetsCursor(t *testing.T) {
	d := New()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, d.Insert(k, nil))
	}

	require.NotNil(t, d.First())
	require.NotNil(t, d.Next())

	// unrelated and even missing keys still reset the cursor
	d.Delete("missing")
	assert.Nil(t, d.Next())
	assert.Nil(t, d.Next(), "Next with no cursor stays a no-op")

	require.NotNil(t, d.First())
	d.Delete("a")
	assert.Nil(t, d.Next())
}

func TestDict_Clear(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("a", strp("1")))
	require.NoError(t, d.Insert("b", strp("2")))
	require.NotNil(t, d.First())

	d.Clear()

	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Next())
	assert.Nil(t, d.First())
	assert.Nil(t, d.Find("a"))
}

func TestDict_EmptyIteration(t *testing.T) {
	d := New()
	assert.Nil(t, d.First())
	assert.Nil(t, d.Next())
}

func TestDict_MaxEntries(t *testing.T) {
	d := New(WithMaxEntries(2))
	require.NoError(t, d.Upsert("a", strp("1")))
	require.NoError(t, d.Upsert("b", strp("2")))

	err := d.Upsert("c", strp("3"))
	assert.ErrorIs(t, err, ErrFull)
	assert.Nil(t, d.Find("c"), "failed insert must not leave a partial entry")
	assert.Equal(t, []string{"b", "a"}, keys(d))

	require.NoError(t, d.Upsert("a", strp("updated")), "updating an existing key is not limited")
	v, _ := d.Find("a").Value()
	assert.Equal(t, "updated", v)

	require.True(t, d.Delete("b"))
	assert.NoError(t, d.Insert("c", nil))
}
