package buffers

import (
	"encoding/binary"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatsOf(t *testing.T) {
	for _, values := range [][]float32{
		{},
		{1},
		{0, 0.5, 0, -0.5, -0.5, 0, 0.5, -0.5, 0},
		{float32(math.Inf(1)), -0, math.MaxFloat32},
	} {
		b := FloatsOf(values...)
		assert.Equal(t, len(values), b.Capacity())
		assert.Equal(t, 0, b.Position())
		assert.Equal(t, len(values)*ElementSize, b.ByteSize())
		assert.Equal(t, len(values), len(b.ToSlice()))
		for i, v := range values {
			assert.Equal(t, v, b.At(i))
		}
	}
}

func TestIntsOf(t *testing.T) {
	b := IntsOf(0, 1, 2, -7, math.MaxInt32, math.MinInt32)
	assert.Equal(t, 6, b.Capacity())
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, []int32{0, 1, 2, -7, math.MaxInt32, math.MinInt32}, b.ToSlice())
	assert.False(t, b.HasArray())
}

func TestFloatsOfCopiesSlice(t *testing.T) {
	src := []float32{1, 2, 3}
	b := FloatsOf(src...)
	src[0] = 42
	assert.Equal(t, float32(1), b.At(0))
}

func TestCollect(t *testing.T) {
	list := []int32{3, 1, 2}
	b := Collect(slices.Values(list))
	assert.Equal(t, list, b.ToSlice())
	assert.Equal(t, 0, b.Position())

	empty := Collect(slices.Values([]float32(nil)))
	assert.Equal(t, 0, empty.Capacity())
	assert.Empty(t, empty.Bytes())
}

func TestNativeByteOrder(t *testing.T) {
	b := FloatsOf(1.5, -2)
	raw := b.Bytes()
	require.Len(t, raw, 8)
	assert.Equal(t, math.Float32bits(1.5), binary.NativeEndian.Uint32(raw[0:]))
	assert.Equal(t, math.Float32bits(-2), binary.NativeEndian.Uint32(raw[4:]))

	ints := IntsOf(-1, 258)
	raw = ints.Bytes()
	assert.Equal(t, uint32(0xffffffff), binary.NativeEndian.Uint32(raw[0:]))
	assert.Equal(t, uint32(258), binary.NativeEndian.Uint32(raw[4:]))
}

func TestWrappedBytesMatchNative(t *testing.T) {
	values := []float32{0, 0.5, 0, -0.5, -0.5, 0}
	assert.Equal(t, FloatsOf(values...).Bytes(), Wrap(values).Bytes())

	indices := []int32{0, 1, 2}
	assert.Equal(t, IntsOf(indices...).Bytes(), Wrap(indices).Bytes())
}

func TestWrappedFloatBytes(t *testing.T) {
	values := []float32{0, 0.5, 0, -0.5, -0.5, 0, 0.5, -0.5, 0}
	var raw []byte
	require.NotPanics(t, func() { raw = Wrap(values).Bytes() })
	require.Len(t, raw, len(values)*ElementSize)
	for i, v := range values {
		assert.Equal(t, math.Float32bits(v), binary.NativeEndian.Uint32(raw[i*ElementSize:]), "element %d", i)
	}
}

func TestHostOrder(t *testing.T) {
	order := hostOrder()
	assert.True(t, order == binary.LittleEndian || order == binary.BigEndian)

	word := make([]byte, 4)
	binary.NativeEndian.PutUint32(word, 0x01020304)
	assert.Equal(t, uint32(0x01020304), order.Uint32(word))
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := FloatsOf(1, 2, 3)
	require.NoError(t, orig.SetPosition(2))

	cp := orig.DeepCopy()
	assert.Equal(t, orig.ToSlice(), cp.ToSlice())
	assert.Equal(t, 0, cp.Position())

	cp.Set(0, 99)
	require.NoError(t, cp.Put(98))
	assert.Equal(t, []float32{1, 2, 3}, orig.ToSlice())
	assert.Equal(t, 2, orig.Position())

	wrapped := Wrap([]int32{4, 5})
	wcp := wrapped.DeepCopy()
	wcp.Set(1, 0)
	assert.Equal(t, int32(5), wrapped.At(1))
}

func TestAsSlice(t *testing.T) {
	backing := []float32{1, 2, 3}
	w := Wrap(backing)
	assert.True(t, w.HasArray())
	view := w.AsSlice()
	view[1] = 20
	assert.Equal(t, float32(20), backing[1])
	assert.Equal(t, float32(20), w.At(1))

	n := FloatsOf(1, 2, 3)
	view = n.AsSlice()
	view[1] = 20
	assert.Equal(t, float32(2), n.At(1))
}

func TestCursor(t *testing.T) {
	b := IntsOf(0, 0)
	require.NoError(t, b.Put(7))
	require.NoError(t, b.Put(8))
	assert.Equal(t, 2, b.Position())
	assert.Equal(t, 0, b.Remaining())
	assert.ErrorIs(t, b.Put(9), ErrOverflow)

	b.Rewind()
	v, err := b.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
	v, err = b.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(8), v)
	_, err = b.Next()
	assert.ErrorIs(t, err, ErrUnderflow)

	assert.ErrorIs(t, b.SetPosition(3), ErrPosition)
	assert.ErrorIs(t, b.SetPosition(-1), ErrPosition)
	assert.NoError(t, b.SetPosition(2))
}
