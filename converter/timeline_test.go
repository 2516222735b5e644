package converter

import (
	"encoding/json"
	"testing"

	"github.com/binzume/spineconv/spine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, s string) *spine.Object {
	t.Helper()
	doc, err := spine.ParseBytes([]byte(s))
	require.NoError(t, err)
	return doc
}

func parseList(t *testing.T, s string) []interface{} {
	t.Helper()
	return parseDoc(t, `{"v":`+s+`}`).Array("v")
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestEncodeCurve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"stepped"`, `{"curve":"stepped"}`},
		{`[0.25,0,0.75,1]`, `{"curve":0.25,"c3":0.75}`},
		{`[0,0,1,1]`, `{"curve":0}`},
		{`[0.1,0.2,0.3,0.4]`, `{"curve":0.1,"c2":0.2,"c3":0.3,"c4":0.4}`},
		{`"linear"`, `{"curve":"linear"}`},
		{`[1,2]`, `{"curve":[1,2]}`},
	}
	for _, tt := range tests {
		curve := parseDoc(t, `{"c":`+tt.in+`}`).Value("c")
		assert.Equal(t, tt.want, toJSON(t, EncodeCurve(curve)), tt.in)
	}
}

func TestIsKnownCurve(t *testing.T) {
	doc := parseDoc(t, `{"a":"stepped","b":[0,0,1,1],"c":"linear","d":[0,0,"x",1],"e":3}`)
	assert.True(t, IsKnownCurve(doc.Value("a")))
	assert.True(t, IsKnownCurve(doc.Value("b")))
	assert.False(t, IsKnownCurve(doc.Value("c")))
	assert.False(t, IsKnownCurve(doc.Value("d")))
	assert.False(t, IsKnownCurve(doc.Value("e")))
	assert.ErrorIs(t, checkCurve(doc.Value("c")), ErrUnknownCurveShape)
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		kind PropertyKind
		in   string
		want string
	}{
		{Rotate, `[{"time":0,"angle":0},{"time":1,"angle":0}]`, `[{},{"time":1}]`},
		{Rotate, `[{"time":0,"angle":0}]`, `[{}]`},
		{Translate, `[{"time":0,"x":0,"y":0},{"time":0.5,"x":3,"y":0,"curve":[0.25,0,0.75,1]}]`,
			`[{},{"time":0.5,"x":3,"curve":0.25,"c3":0.75}]`},
		{Scale, `[{"time":0,"x":1,"y":1},{"time":2,"x":1,"y":0.5,"curve":"stepped"}]`,
			`[{},{"time":2,"y":0.5,"curve":"stepped"}]`},
		{Attachment, `[{"time":0,"name":"a"},{"time":1,"name":null}]`, `[{"name":"a"},{"time":1,"name":null}]`},
		{Color, `[{"time":0,"color":"ffffffff"},{"time":1,"color":"ff0000ff"}]`,
			`[{"color":"ffffffff"},{"time":1,"color":"ff0000ff"}]`},
		{IK, `[{"time":0,"mix":1,"bendPositive":true},{"time":1,"mix":0.5,"bendPositive":false}]`,
			`[{},{"time":1,"mix":0.5,"bendPositive":false}]`},
		{Deform, `[{"time":0},{"time":1,"offset":4,"vertices":[1.5,2]}]`, `[{},{"time":1,"offset":4,"vertices":[1.5,2]}]`},
		{DrawOrder, `[{"time":0,"offsets":[{"slot":"a","offset":1}]},{"time":1}]`,
			`[{"offsets":[{"slot":"a","offset":1}]},{"time":1}]`},
		{Rotate, `[]`, `[]`},
		{Rotate, `["junk",{"angle":0}]`, `[{}]`},
	}
	for _, tt := range tests {
		got := Canonicalize(parseList(t, tt.in), tt.kind)
		assert.Equal(t, tt.want, toJSON(t, got), "%s %s", tt.kind, tt.in)
	}
}

func TestCanonicalizeKeepsFirstKeyframe(t *testing.T) {
	for kind := range propertyRules {
		got := Canonicalize(parseList(t, `[{"time":0},{"time":0}]`), kind)
		assert.Len(t, got, 1, kind)
	}
}

func TestCanonicalizeDoesNotModifyInput(t *testing.T) {
	in := parseList(t, `[{"time":0,"angle":0,"curve":[0,0,1,1]}]`)
	Canonicalize(in, Rotate)
	assert.Equal(t, `[{"time":0,"angle":0,"curve":[0,0,1,1]}]`, toJSON(t, in))
}

func TestHasMeaningfulChanges(t *testing.T) {
	tests := []struct {
		kind PropertyKind
		in   string
		want bool
	}{
		{Rotate, `[{"time":0,"angle":0},{"time":1}]`, false},
		{Rotate, `[{"time":0,"angle":0},{"time":1,"angle":0.01}]`, true},
		{Scale, `[{"x":1,"y":1}]`, false},
		{Scale, `[{"x":0}]`, true},
		{Color, `[{"color":"FFFFFFFF"}]`, false},
		{Color, `[{"color":"ffffff00"}]`, true},
		{Attachment, `[{"name":null}]`, true},
		{Deform, `[{"time":0}]`, true},
		{DrawOrder, `[{"time":0},{"time":1,"offsets":[]}]`, false},
		{DrawOrder, `[{"time":0,"offsets":[{"slot":"a","offset":1}]}]`, true},
		{Rotate, `[]`, false},
		{PropertyKind("flipX"), `[{"x":true}]`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasMeaningfulChanges(parseList(t, tt.in), tt.kind), "%s %s", tt.kind, tt.in)
	}
}
