package emitter

import (
	"strconv"
	"time"
)

type valueType uint8

const (
	intValue valueType = iota
	uintValue
	floatValue
)

// Value is the numeric payload of a measurement. Integers keep their
// integer form on the wire; floats are written in their shortest decimal
// form.
type Value struct {
	typ valueType
	i   int64
	u   uint64
	f   float64
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{typ: intValue, i: v} }

// Uint returns an unsigned integer Value.
func Uint(v uint64) Value { return Value{typ: uintValue, u: v} }

// Float returns a floating point Value.
func Float(v float64) Value { return Value{typ: floatValue, f: v} }

// Duration returns d as a millisecond Value, the unit statsd timers use.
// Whole milliseconds stay integers.
func Duration(d time.Duration) Value {
	if d%time.Millisecond == 0 {
		return Int(int64(d / time.Millisecond))
	}
	return Float(float64(d) / float64(time.Millisecond))
}

// AppendTo appends the wire form of v to dst.
func (v Value) AppendTo(dst []byte) []byte {
	switch v.typ {
	case uintValue:
		return strconv.AppendUint(dst, v.u, 10)
	case floatValue:
		return strconv.AppendFloat(dst, v.f, 'f', -1, 64)
	}
	return strconv.AppendInt(dst, v.i, 10)
}

func (v Value) String() string {
	return string(v.AppendTo(nil))
}
