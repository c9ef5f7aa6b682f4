package buffers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"math"

	"golang.org/x/mobile/exp/f32"
)

// ElementSize is the size in bytes of every element kind a Buffer can hold.
const ElementSize = 4

var (
	ErrOverflow  = errors.New("buffer overflow")
	ErrUnderflow = errors.New("buffer underflow")
	ErrPosition  = errors.New("position out of range")
)

// Element is the set of numeric types a Buffer can hold.
type Element interface {
	float32 | int32
}

// Buffer is a fixed-capacity sequence of 32-bit numbers with a read/write
// cursor. Buffers built by FloatsOf, IntsOf, Collect and DeepCopy keep their
// contents as raw bytes in the host's native order, ready for upload.
// Buffers built by Wrap are backed by the caller's slice.
type Buffer[T Element] struct {
	native []byte
	array  []T
	direct bool
	pos    int
}

type (
	FloatBuffer = Buffer[float32]
	IntBuffer   = Buffer[int32]
)

// byteOrder is the host's byte order expressed as one of the two fixed
// orders f32.Bytes accepts.
var byteOrder = hostOrder()

func hostOrder() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// pack encodes values in native order into a new byte slice.
func pack[T Element](values []T) []byte {
	if floats, ok := any(values).([]float32); ok {
		return f32.Bytes(byteOrder, floats...)
	}
	out := make([]byte, len(values)*ElementSize)
	for i, v := range values {
		encode(out[i*ElementSize:], v)
	}
	return out
}

func direct[T Element](values []T) *Buffer[T] {
	return &Buffer[T]{native: pack(values), direct: true}
}

// FloatsOf copies values into a new native-order float buffer.
func FloatsOf(values ...float32) *FloatBuffer {
	return direct(values)
}

// IntsOf copies values into a new native-order int buffer.
func IntsOf(values ...int32) *IntBuffer {
	return direct(values)
}

// Collect drains seq into a new native-order buffer.
func Collect[T Element](seq iter.Seq[T]) *Buffer[T] {
	var values []T
	for v := range seq {
		values = append(values, v)
	}
	return direct(values)
}

// Wrap returns a buffer backed by values. Writes through the buffer are
// visible in values and vice versa.
func Wrap[T Element](values []T) *Buffer[T] {
	return &Buffer[T]{array: values}
}

// Capacity returns the number of elements the buffer holds.
func (b *Buffer[T]) Capacity() int {
	if b.direct {
		return len(b.native) / ElementSize
	}
	return len(b.array)
}

// HasArray reports whether the buffer is backed by a plain slice.
func (b *Buffer[T]) HasArray() bool { return !b.direct }

func (b *Buffer[T]) Position() int { return b.pos }

func (b *Buffer[T]) SetPosition(pos int) error {
	if pos < 0 || pos > b.Capacity() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, pos, b.Capacity())
	}
	b.pos = pos
	return nil
}

// Rewind resets the cursor to 0.
func (b *Buffer[T]) Rewind() { b.pos = 0 }

// Remaining returns the number of elements between the cursor and the end.
func (b *Buffer[T]) Remaining() int { return b.Capacity() - b.pos }

// At returns the element at index i. It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	if !b.direct {
		return b.array[i]
	}
	return decode[T](b.native[i*ElementSize:])
}

// Set stores v at index i without moving the cursor. It panics if i is out
// of range.
func (b *Buffer[T]) Set(i int, v T) {
	if !b.direct {
		b.array[i] = v
		return
	}
	encode(b.native[i*ElementSize:], v)
}

// Put writes v at the cursor and advances it.
func (b *Buffer[T]) Put(v T) error {
	if b.pos >= b.Capacity() {
		return ErrOverflow
	}
	b.Set(b.pos, v)
	b.pos++
	return nil
}

// Next reads the element at the cursor and advances it.
func (b *Buffer[T]) Next() (T, error) {
	if b.pos >= b.Capacity() {
		var zero T
		return zero, ErrUnderflow
	}
	v := b.At(b.pos)
	b.pos++
	return v, nil
}

// ToSlice copies the contents into a new slice.
func (b *Buffer[T]) ToSlice() []T {
	out := make([]T, b.Capacity())
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// AsSlice returns the backing slice of a wrapped buffer, or a copy of the
// contents when the buffer lives in native storage.
func (b *Buffer[T]) AsSlice() []T {
	if !b.direct {
		return b.array
	}
	return b.ToSlice()
}

// DeepCopy returns an independent native-order buffer with the same
// contents and the cursor at 0.
func (b *Buffer[T]) DeepCopy() *Buffer[T] {
	return direct(b.ToSlice())
}

// ByteSize returns the size of the contents in bytes.
func (b *Buffer[T]) ByteSize() int { return b.Capacity() * ElementSize }

// Bytes returns the whole contents in native byte order, independent of the
// cursor. For native buffers the returned slice aliases the storage.
func (b *Buffer[T]) Bytes() []byte {
	if b.direct {
		return b.native
	}
	return pack(b.array)
}

func encode[T Element](dst []byte, v T) {
	switch x := any(v).(type) {
	case float32:
		byteOrder.PutUint32(dst, math.Float32bits(x))
	case int32:
		byteOrder.PutUint32(dst, uint32(x))
	}
}

func decode[T Element](src []byte) T {
	bits := byteOrder.Uint32(src)
	var v T
	switch p := any(&v).(type) {
	case *float32:
		*p = math.Float32frombits(bits)
	case *int32:
		*p = int32(bits)
	}
	return v
}
