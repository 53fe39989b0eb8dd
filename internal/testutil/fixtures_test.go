package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sertree/internal/ser"
)

// callCounter counts top-level calls and fails every aggregate opener.
type callCounter struct {
	ser.Serializer
	calls []string
}

func (c *callCounter) Str(string) error {
	c.calls = append(c.calls, "str")
	return nil
}

func (c *callCounter) UnitVariant(_ string, _ uint32, v string) error {
	c.calls = append(c.calls, "unit_variant "+v)
	return nil
}

func (c *callCounter) Seq(ser.Len) (ser.SeqSerializer, error) {
	c.calls = append(c.calls, "seq")
	return nil, ser.Custom("no sequences")
}

func TestShapeCase_String(t *testing.T) {
	assert.Equal(t, "Empty", Empty.String())
	assert.Equal(t, "Polygon", Polygon.String())
}

func TestShape_UnitVariantIsOneCall(t *testing.T) {
	c := &callCounter{}
	require.NoError(t, Shape{Case: Empty}.Serialize(c))
	assert.Equal(t, []string{"unit_variant Empty"}, c.calls)
}

func TestShape_UnknownCase(t *testing.T) {
	err := Shape{Case: 9}.Serialize(&callCounter{})
	require.Error(t, err)
	assert.True(t, ser.IsCustom(err))
}

func TestFail_ReturnsCustomError(t *testing.T) {
	err := Fail{Msg: "boom"}.Serialize(&callCounter{})
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestStubborn_PropagatesOpenerError(t *testing.T) {
	c := &callCounter{}
	err := Stubborn{}.Serialize(c)
	require.Error(t, err)
	assert.Equal(t, []string{"seq"}, c.calls)
}

func TestNest_ZeroDepthIsIdentity(t *testing.T) {
	v := ser.Str("x")
	assert.Equal(t, ser.Serializable(v), Nest(v, 0))
}
