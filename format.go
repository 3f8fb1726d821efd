package emitter

import (
	"strconv"

	"github.com/stripe/emitter/internal/safepool"
)

// LineSeparator separates commands in a batched payload. Collectors split
// datagrams on newlines.
const LineSeparator = "\n"

var formatBuffers = safepool.NewResettingPool(
	func() *[]byte {
		b := make([]byte, 0, 128)
		return &b
	},
	func(b *[]byte) *[]byte {
		*b = (*b)[:0]
		return b
	},
)

// AppendFormat appends the statsd command for one measurement to dst:
//
//	name:value|suffix
//	name:value|suffix|@rate
//
// The rate segment is written only when rate < 1, using the shortest
// decimal that round-trips to rate. Names are written as given.
func AppendFormat(dst []byte, name string, value Value, kind Kind, rate float64) []byte {
	dst = append(dst, name...)
	dst = append(dst, ':')
	dst = value.AppendTo(dst)
	dst = append(dst, '|')
	dst = append(dst, kind.Suffix()...)
	if rate < 1 {
		dst = append(dst, "|@"...)
		dst = strconv.AppendFloat(dst, rate, 'f', -1, 64)
	}
	return dst
}

// Format returns the statsd command for one measurement. See AppendFormat.
func Format(name string, value Value, kind Kind, rate float64) string {
	buf := formatBuffers.Get()
	defer formatBuffers.Put(buf)
	*buf = AppendFormat(*buf, name, value, kind, rate)
	return string(*buf)
}
