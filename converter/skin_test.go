package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBounds(t *testing.T) {
	skins := parseDoc(t, `{"s":{
		"default": {"body": {"body": {"x":0,"y":0,"width":10,"height":10}}},
		"alt": {"hand": {"hand": {"x":100,"width":2,"height":2}, "point": {"type":"point"}}}
	}}`).Value("s")

	r, ok := EstimateBounds(skins)
	assert.True(t, ok)
	assert.Equal(t, -5.0, r.Min.X)
	assert.Equal(t, -5.0, r.Min.Y)
	assert.Equal(t, 106.0, r.Width())
	assert.Equal(t, 10.0, r.Height())

	// 3.8 skin records give the same result
	r2, ok := EstimateBounds(RestructureSkins(skins))
	assert.True(t, ok)
	assert.Equal(t, r, r2)
}

func TestEstimateBoundsWithoutGeometry(t *testing.T) {
	skins := parseDoc(t, `{"s":{"default":{"a":{"a":{"width":0,"height":5}},"b":{"b":{"type":"boundingbox"}}}}}`).Value("s")
	_, ok := EstimateBounds(skins)
	assert.False(t, ok)

	_, ok = EstimateBounds(nil)
	assert.False(t, ok)
}

func TestRestructureSkins(t *testing.T) {
	skins := parseDoc(t, `{"s":{"default":{"a":{}},"red":{"b":{}}}}`).Value("s")
	got := RestructureSkins(skins)
	assert.Equal(t, `[{"name":"default","attachments":{"a":{}}},{"name":"red","attachments":{"b":{}}}]`, toJSON(t, got))

	// already a list
	again := RestructureSkins(got)
	assert.Equal(t, len(got), len(again))
	assert.True(t, &got[0] == &again[0])

	assert.Empty(t, RestructureSkins("bad"))
}

func TestReorderBone(t *testing.T) {
	bone := parseDoc(t, `{"y":2,"color":"ff0000ff","x":1,"name":"arm","rotation":10,"length":5,"parent":"root"}`)
	got := ReorderBone(bone)
	assert.Equal(t, `{"name":"arm","parent":"root","length":5,"rotation":10,"x":1,"y":2,"color":"ff0000ff"}`, toJSON(t, got))
	assert.Equal(t, "y", bone.Keys()[0])
}
