package emitter

// Kind is the statsd metric type of a measurement. The set of kinds is
// closed; each one carries the suffix it is written with on the wire.
type Kind int

const (
	// Counting is a count that the daemon sums up over a flush interval.
	Counting Kind = iota + 1
	// Timing is a duration in milliseconds.
	Timing
	// Gauge is an instantaneous reading.
	Gauge
)

// Suffix returns the wire type marker of k, or "" if k is not a known kind.
func (k Kind) Suffix() string {
	switch k {
	case Counting:
		return "c"
	case Timing:
		return "ms"
	case Gauge:
		return "g"
	}
	return ""
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k.Suffix() != ""
}

func (k Kind) String() string {
	switch k {
	case Counting:
		return "counting"
	case Timing:
		return "timing"
	case Gauge:
		return "gauge"
	}
	return "unknown"
}
