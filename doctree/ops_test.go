package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResources(t *testing.T, data string) *Document {
	t.Helper()

	doc, err := ParseBytes([]byte(data))
	require.NoError(t, err)

	return doc
}

func TestUpsertByAttributeIdempotent(t *testing.T) {
	doc := newResources(t, `<resources><string name="keep">x</string></resources>`)
	l := doc.Root().ChildList("string")

	UpsertByAttribute(l, "name", "app_name", WithText("Seed"))
	once := doc.Clone()

	UpsertByAttribute(l, "name", "app_name", WithText("Seed"))
	assert.True(t, Equal(once, doc))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "Seed", FindByAttribute(l, "name", "app_name").Text())
}

func TestUpsertByAttributeMergesOnlyGivenFields(t *testing.T) {
	doc := newResources(t, `<application><meta-data android:name="k" android:value="old" tools:node="replace"/></application>`)
	l := doc.Root().ChildList("meta-data")

	n := UpsertByAttribute(l, "android:name", "k", WithAttr("android:value", "new"))

	value, _ := n.Attr("android:value")
	assert.Equal(t, "new", value)

	node, ok := n.Attr("tools:node")
	assert.True(t, ok)
	assert.Equal(t, "replace", node)
	assert.Equal(t, 1, l.Len())
}

func TestUpsertByAttributeFirstMatchWins(t *testing.T) {
	doc := newResources(t, `<resources><string name="dup">1</string><string name="dup">2</string></resources>`)
	l := doc.Root().ChildList("string")

	UpsertByAttribute(l, "name", "dup", WithText("3"))

	nodes := l.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "3", nodes[0].Text())
	assert.Equal(t, "2", nodes[1].Text())
}

func TestResetByAttributeAbsent(t *testing.T) {
	doc := newResources(t, `<resources/>`)
	before := doc.Clone()

	assert.False(t, ResetByAttribute(doc.Root().ChildList("string"), "name", "missing", WithText("xxx")))
	assert.True(t, Equal(before, doc))
}

func TestRemoveByAttribute(t *testing.T) {
	doc := newResources(t, `<resources><string name="a">1</string><string name="b">2</string><string name="a">3</string></resources>`)
	l := doc.Root().ChildList("string")

	assert.True(t, RemoveByAttribute(l, "name", "a"))

	nodes := l.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "2", nodes[0].Text())
	assert.Equal(t, "3", nodes[1].Text())

	assert.False(t, RemoveByAttribute(l, "name", "missing"))
	assert.Equal(t, 2, l.Len())
}

func TestRemoveByPredicate(t *testing.T) {
	doc := newResources(t, `<application>
	<service android:name="a"/>
	<service android:name="b"><intent-filter><action android:name="EVENT"/></intent-filter></service>
</application>`)
	l := doc.Root().ChildList("service")

	hasEvent := func(n *Node) bool {
		return n.ChildList("intent-filter").Find(func(f *Node) bool {
			return FindByAttribute(f.ChildList("action"), "android:name", "EVENT") != nil
		}) != nil
	}

	assert.True(t, RemoveByPredicate(l, hasEvent))
	require.Equal(t, 1, l.Len())
	assert.False(t, RemoveByPredicate(l, hasEvent))
}

func TestChildListAppendGroupsSiblings(t *testing.T) {
	doc := newResources(t, `<manifest><uses-permission android:name="a"/><application/></manifest>`)

	UpsertByAttribute(doc.Root().ChildList("uses-permission"), "android:name", "b")
	UpsertByAttribute(doc.Root().ChildList("queries"), "android:name", "c")

	names := []string{}
	for _, c := range doc.Root().Children {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"uses-permission", "uses-permission", "application", "queries"}, names)
}

func TestChildListDoesNotCreate(t *testing.T) {
	doc := newResources(t, `<manifest/>`)
	before := doc.Clone()

	l := doc.Root().ChildList("application")
	assert.Equal(t, 0, l.Len())
	assert.True(t, Equal(before, doc))
}
