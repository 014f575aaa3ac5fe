package bulk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphload/graphload/cypher"
)

func TestNodeSetFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ns := NewNodeSet([]string{"Person", "Actor"}, []string{"name"})
	require.NoError(t, ns.Add(Properties{"name": "Alice", "age": float64(30)}))
	require.NoError(t, ns.Add(Properties{"name": "Bob", "tags": []any{"a", "b"}}))

	csvPath, metaPath, err := ns.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ns.ObjectFileName()+".csv"), csvPath)
	assert.Equal(t, filepath.Join(dir, ns.ObjectFileName()+".json"), metaPath)

	loaded, err := ReadNodeSetFiles(csvPath, metaPath)
	require.NoError(t, err)

	assert.Equal(t, ns.Labels, loaded.Labels)
	assert.Equal(t, ns.MergeKeys, loaded.MergeKeys)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, Properties{"name": "Alice", "age": float64(30)}, loaded.Nodes()[0])
	assert.Equal(t, Properties{"name": "Bob", "tags": []any{"a", "b"}}, loaded.Nodes()[1])
}

func TestNodeSetFileAbsentProperty(t *testing.T) {
	dir := t.TempDir()

	ns := NewNodeSet([]string{"Person"}, []string{"name"})
	require.NoError(t, ns.Add(Properties{"name": "Alice", "age": float64(30)}))
	require.NoError(t, ns.Add(Properties{"name": "Bob"}))

	csvPath, metaPath, err := ns.WriteFiles(dir)
	require.NoError(t, err)

	loaded, err := ReadNodeSetFiles(csvPath, metaPath)
	require.NoError(t, err)

	// An absent property stays absent, it does not come back as nil.
	assert.NotContains(t, loaded.Nodes()[1], "age")
}

func TestStreamNodeSetFiles(t *testing.T) {
	dir := t.TempDir()

	ns := NewNodeSet([]string{"Person"}, []string{"name"})
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, ns.Add(Properties{"name": name}))
	}
	csvPath, metaPath, err := ns.WriteFiles(dir)
	require.NoError(t, err)

	loaded, rows, err := StreamNodeSetFiles(csvPath, metaPath)
	require.NoError(t, err)
	assert.Zero(t, loaded.Len(), "streamed set holds no records")

	var names []string
	for props, err := range rows {
		require.NoError(t, err)
		names = append(names, props["name"].(string))
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names)
}

func TestStreamNodeSetFilesMissingCSV(t *testing.T) {
	dir := t.TempDir()

	ns := NewNodeSet([]string{"Person"}, []string{"name"})
	_, metaPath, err := ns.WriteFiles(dir)
	require.NoError(t, err)

	_, rows, err := StreamNodeSetFiles(filepath.Join(dir, "missing.csv"), metaPath)
	require.NoError(t, err, "the csv is opened lazily")

	for _, err := range rows {
		require.Error(t, err)
	}
}

func TestReadNodeSetFilesMissingMetadata(t *testing.T) {
	_, err := ReadNodeSetFiles("whatever.csv", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRelationshipSetFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	rs := NewRelationshipSet("LIKES", []string{"Person"}, []string{"Movie"},
		[]cypher.Property{cypher.Prop("name"), cypher.ArrayProp("alias")}, cypher.Props("title"))
	require.NoError(t, rs.Add(
		Properties{"name": "Alice", "alias": "ally"},
		Properties{"title": "Matrix"},
		Properties{"stars": float64(5)},
	))

	csvPath, metaPath, err := rs.WriteFiles(dir)
	require.NoError(t, err)

	loaded, err := ReadRelationshipSetFiles(csvPath, metaPath)
	require.NoError(t, err)

	assert.Equal(t, "LIKES", loaded.RelType)
	assert.Equal(t, rs.StartNodeLabels, loaded.StartNodeLabels)
	assert.Equal(t, rs.EndNodeLabels, loaded.EndNodeLabels)
	assert.Equal(t, rs.StartNodeProperties, loaded.StartNodeProperties, "array markers survive the round trip")

	require.Equal(t, 1, loaded.Len())
	rel := loaded.Relationships()[0]
	assert.Equal(t, Properties{"name": "Alice", "alias": "ally"}, rel.StartNodeProperties)
	assert.Equal(t, Properties{"title": "Matrix"}, rel.EndNodeProperties)
	assert.Equal(t, Properties{"stars": float64(5)}, rel.Properties)
}

func TestStreamRelationshipSetFiles(t *testing.T) {
	dir := t.TempDir()

	rs := NewRelationshipSet("LIKES", []string{"Person"}, []string{"Movie"},
		cypher.Props("name"), cypher.Props("title"))
	require.NoError(t, rs.Add(Properties{"name": "Alice"}, Properties{"title": "Matrix"}, nil))
	require.NoError(t, rs.Add(Properties{"name": "Bob"}, Properties{"title": "Dune"}, nil))

	csvPath, metaPath, err := rs.WriteFiles(dir)
	require.NoError(t, err)

	loaded, rows, err := StreamRelationshipSetFiles(csvPath, metaPath)
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())

	var titles []string
	for rel, err := range rows {
		require.NoError(t, err)
		titles = append(titles, rel.EndNodeProperties["title"].(string))
	}
	assert.Equal(t, []string{"Matrix", "Dune"}, titles)
}
