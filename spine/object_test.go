package spine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeepsKeyOrder(t *testing.T) {
	doc, err := ParseBytes([]byte(`{"z":1,"a":{"y":2.50,"b":[1,"x<y",null,true]},"m":""}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())
	assert.Equal(t, []string{"y", "b"}, doc.Object("a").Keys())

	out, err := Marshal(doc, "")
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":2.50,"b":[1,"x<y",null,true]},"m":""}`, string(out))
}

func TestObjectSetDelete(t *testing.T) {
	o := NewObject()
	o.Set("a", 1).Set("b", 2).Set("c", 3)
	o.Set("a", 10)
	assert.Equal(t, []string{"a", "b", "c"}, o.Keys())
	assert.Equal(t, 10, o.Value("a"))

	o.Delete("b")
	o.Delete("missing")
	assert.Equal(t, []string{"a", "c"}, o.Keys())
	assert.False(t, o.Has("b"))
	assert.Equal(t, 2, o.Len())
}

func TestObjectCloneIsDeep(t *testing.T) {
	doc, err := ParseBytes([]byte(`{"a":{"b":[{"c":1}]}}`))
	require.NoError(t, err)

	c := doc.Clone()
	c.Object("a").Array("b")[0].(*Object).Set("c", json.Number("2"))
	c.Object("a").Set("d", true)

	assert.Equal(t, json.Number("1"), doc.Object("a").Array("b")[0].(*Object).Value("c"))
	assert.False(t, doc.Object("a").Has("d"))
}

func TestNilObjectAccessors(t *testing.T) {
	var o *Object
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, o.Object("x"))
	assert.Nil(t, o.Array("x"))
	_, ok := o.Float("x")
	assert.False(t, ok)
}

func TestParseMalformed(t *testing.T) {
	for _, src := range []string{``, `[]`, `{"a":}`, `{"a":1} {"b":2}`, `null`} {
		_, err := ParseBytes([]byte(src))
		assert.True(t, errors.Is(err, ErrMalformedInput), "input %q: %v", src, err)
	}
}

func TestParseJSONCAndBOM(t *testing.T) {
	src := "\xef\xbb\xbf{\n // comment\n \"skeleton\": {\"spine\": \"1.9.17\",},\n}"
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "1.9.17", SkeletonVersion(doc))

	doc, err = ParseBytes([]byte("\xef\xbb\xbf{\"skeleton\":{\"spine\":\"1.9\"},\"bones\":[]}"))
	require.NoError(t, err)
	assert.Equal(t, "1.9", SkeletonVersion(doc))
}

func TestMarshalIndent(t *testing.T) {
	doc := NewObject().Set("a", json.Number("1"))
	data, err := Marshal(doc, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))

	data, err = Marshal(doc, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, json.Number("-5"), Number(-5))
	assert.Equal(t, json.Number("0.25"), Number(0.25))
	assert.Equal(t, json.Number("106"), Number(106))

	f, ok := Float(json.Number("1.5"))
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = Float("1.5")
	assert.False(t, ok)
	assert.Equal(t, 3.0, FloatOr(nil, 3))
}
