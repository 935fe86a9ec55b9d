// FILE: lixenwraith/typeconv/source_test.go
package typeconv

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemTable tests the in-memory table and its rows
func TestMemTable(t *testing.T) {
	table := NewTable("Id", "name", "id")
	assert.Equal(t, []string{"Id", "name", "id"}, table.Columns())

	t.Run("DuplicateColumns", func(t *testing.T) {
		dup := NewTable("a", "b", "a")
		assert.Equal(t, []string{"a", "b"}, dup.Columns())
	})

	t.Run("AddRow", func(t *testing.T) {
		_, err := table.AddRow(1, "x")
		assert.Error(t, err, "value count must match columns")

		row, err := table.AddRow(1, "x", 2)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
		assert.Same(t, row, table.At(0))
		assert.Equal(t, []any{1, "x", 2}, row.Values())
	})

	t.Run("ColumnLookup", func(t *testing.T) {
		row := table.At(0)
		v, ok := row.Value("id")
		require.True(t, ok)
		assert.Equal(t, 2, v, "exact name wins")

		v, ok = row.Value("NAME")
		require.True(t, ok)
		assert.Equal(t, "x", v, "case-insensitive fallback")

		_, ok = row.Value("missing")
		assert.False(t, ok)
		assert.True(t, table.HasColumn("Name"))
		assert.False(t, table.HasColumn("other"))
	})

	t.Run("NewRowAndSet", func(t *testing.T) {
		row := table.NewRow()
		v, ok := row.Value("name")
		require.True(t, ok)
		assert.Equal(t, Missing, v)

		require.NoError(t, row.Set("Name", "y"))
		v, _ = row.Value("name")
		assert.Equal(t, "y", v)

		assert.ErrorIs(t, row.Set("other", 1), ErrUnknownColumn)
		assert.True(t, row.Has("ID"))
		assert.False(t, row.Has("other"))
	})

	t.Run("ValuesAreCopied", func(t *testing.T) {
		row := table.At(0)
		vals := row.Values()
		vals[1] = "changed"
		v, _ := row.Value("name")
		assert.Equal(t, "x", v)
	})
}

// TestMapRow tests the map-backed row
func TestMapRow(t *testing.T) {
	row := MapRow{"a": 1, "b": nil}
	assert.True(t, row.Has("b"))
	assert.False(t, row.Has("c"))

	v, ok := row.Value("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	require.NoError(t, row.Set("b", 2))
	assert.Equal(t, 2, row["b"])
	assert.ErrorIs(t, row.Set("c", 3), ErrUnknownColumn)
	assert.NotContains(t, row, "c")
}

// TestCollections tests the collection adapters
func TestCollections(t *testing.T) {
	t.Run("Values", func(t *testing.T) {
		form := Values(url.Values{"tag": {"a", "b"}, "empty": {}})
		v, ok := form.Lookup("tag")
		assert.True(t, ok)
		assert.Equal(t, "a,b", v)

		_, ok = form.Lookup("empty")
		assert.False(t, ok)
		_, ok = form.Lookup("none")
		assert.False(t, ok)
	})

	t.Run("StringMap", func(t *testing.T) {
		v, ok := StringMap{"k": "v"}.Lookup("k")
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("AnyMap", func(t *testing.T) {
		v, ok := AnyMap{"k": 3.5}.Lookup("k")
		assert.True(t, ok)
		assert.Equal(t, 3.5, v)
		_, ok = AnyMap{}.Lookup("k")
		assert.False(t, ok)
	})

	t.Run("IsMissing", func(t *testing.T) {
		assert.True(t, IsMissing(nil))
		assert.True(t, IsMissing(Missing))
		assert.False(t, IsMissing(""))
		assert.False(t, IsMissing(0))
	})
}

// TestTableToMap tests two-column dictionary extraction
func TestTableToMap(t *testing.T) {
	table := NewTable("code", "label")
	_, _ = table.AddRow("a", "Alpha")
	_, _ = table.AddRow(2, 2.5)
	_, _ = table.AddRow("c", Missing)

	m, err := TableToMap(table, "code", "label")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "Alpha", "2": "2.5", "c": ""}, m)

	t.Run("Duplicate", func(t *testing.T) {
		dup := NewTable("k", "v")
		_, _ = dup.AddRow("x", 1)
		_, _ = dup.AddRow("x", 2)
		_, err := TableToMap(dup, "k", "v")
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		_, err := TableToMap(table, "code", "nope")
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("EmptyTable", func(t *testing.T) {
		m, err := TableToMap(NewTable("k", "v"), "k", "v")
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("NilTable", func(t *testing.T) {
		_, err := TableToMap(nil, "k", "v")
		assert.ErrorIs(t, err, ErrNilSource)

		var typed *MemTable
		_, err = TableToMap(typed, "k", "v")
		assert.ErrorIs(t, err, ErrNilSource)
	})
}
