package fastrand

var globalPool = NewRandPool()

// Float64 draws from the process-wide pool. It is the default entropy
// source of emitter.RandomSampler.
func Float64() float64 {
	return globalPool.Float64()
}

// Int63 draws from the process-wide pool.
func Int63() int64 {
	return globalPool.Int63()
}
