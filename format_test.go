package emitter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindSuffix(t *testing.T) {
	assert.Equal(t, "c", Counting.Suffix())
	assert.Equal(t, "ms", Timing.Suffix())
	assert.Equal(t, "g", Gauge.Suffix())
	assert.Equal(t, "", Kind(0).Suffix())
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "unknown", Kind(7).String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value Value
		kind  Kind
		rate  float64
		want  string
	}{
		{Int(5), Counting, 1, "a.b:5|c"},
		{Int(-3), Counting, 1, "a.b:-3|c"},
		{Uint(math.MaxUint64), Counting, 1, "a.b:18446744073709551615|c"},
		{Float(5), Gauge, 1, "a.b:5|g"},
		{Float(1.0 / 3), Gauge, 1, "a.b:0.3333333333333333|g"},
		{Float(1e21), Gauge, 1, "a.b:1000000000000000000000|g"},
		{Float(1e-7), Gauge, 1, "a.b:0.0000001|g"},
		{Int(5), Timing, 0.1, "a.b:5|ms|@0.1"},
		{Int(5), Timing, 0.001, "a.b:5|ms|@0.001"},
		{Int(5), Timing, 0.3333, "a.b:5|ms|@0.3333"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format("a.b", tt.value, tt.kind, tt.rate))
	}
}

func TestAppendFormatReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = AppendFormat(buf, "counter", Int(1), Counting, 1)
	buf = append(buf, LineSeparator...)
	buf = AppendFormat(buf, "timer", Int(2), Timing, 0.5)
	assert.Equal(t, "counter:1|c\ntimer:2|ms|@0.5", string(buf))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "250", Duration(250*time.Millisecond).String())
	assert.Equal(t, "1.5", Duration(1500*time.Microsecond).String())
	assert.Equal(t, "0", Duration(0).String())
}

func TestRandomSampler(t *testing.T) {
	draws := 0
	s := NewRandomSampler(func() float64 {
		draws++
		return 0.5
	})

	assert.True(t, s.ShouldSend(1))
	assert.True(t, s.ShouldSend(2))
	assert.Equal(t, 0, draws, "a rate of one must not draw")

	assert.True(t, s.ShouldSend(0.6))
	assert.False(t, s.ShouldSend(0.5))
	assert.False(t, s.ShouldSend(0.1))
	assert.Equal(t, 3, draws)
}

func TestRandomSamplerDistribution(t *testing.T) {
	s := NewRandomSampler(nil)
	const n = 20000
	sent := 0
	for i := 0; i < n; i++ {
		if s.ShouldSend(0.25) {
			sent++
		}
	}
	// 0.25 ± ~10 standard deviations
	assert.InDelta(t, 0.25, float64(sent)/n, 0.03)
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(1))
	assert.NoError(t, ValidateRate(0.01))
	for _, bad := range []float64{0, -1, 1.01, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateRate(bad), ErrInvalidSampleRate)
	}
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.0, clampRate(math.NaN()))
	assert.Equal(t, 0.0, clampRate(-2))
	assert.Equal(t, 1.0, clampRate(math.Inf(1)))
	assert.Equal(t, 0.5, clampRate(0.5))
}

func TestBufferDrainJoined(t *testing.T) {
	var b Buffer
	assert.Equal(t, "", b.DrainJoined(LineSeparator))

	b.Append("a:1|c")
	b.Append("b:2|g")
	assert.Equal(t, 2, b.Len())

	snapshot := b.Commands()
	snapshot[0] = "mutated"
	assert.Equal(t, []string{"a:1|c", "b:2|g"}, b.Commands())

	assert.Equal(t, "a:1|c;b:2|g", b.DrainJoined(";"))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.DrainJoined(";"))
}
