package main

import (
	"context"
	"flag"
	"math"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/stripe/emitter"
	"github.com/stripe/emitter/promstats"
	"github.com/stripe/emitter/transport"
	"github.com/stripe/emitter/util/build"
	"golang.org/x/time/rate"
)

func main() {
	qps := flag.Int("qps", 100, "Queries per second to make.")
	hostport := flag.String("hostport", "localhost:8125", "hostport to send metrics to")
	parallelism := flag.Int("parallelism", runtime.NumCPU(), "number of workers to generate load")
	connections := flag.Int("connections", runtime.NumCPU(), "number of sockets to share")
	batchSize := flag.Int("batch", 1, "measurements per datagram; 1 sends each one immediately")
	sampleRate := flag.Float64("rate", 1, "sample rate of the generated counter")
	adminAddr := flag.String("admin", "localhost:6060", "address serving /metrics and /debug/pprof")
	flag.Parse()

	if err := emitter.ValidateRate(*sampleRate); err != nil {
		logrus.WithError(err).Fatal("Invalid -rate")
	}

	conns, err := newRoundRobinTransport(*connections, *hostport)
	if err != nil {
		logrus.WithError(err).Fatal("failed creating connections")
	}
	e := emitter.New(conns)

	prometheus.MustRegister(promstats.NewCollector("statsd_load", nil, e))
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/version", build.HandleVersion)
	http.HandleFunc("/builddate", build.HandleBuildDate)
	go func() {
		logrus.WithError(http.ListenAndServe(*adminAddr, nil)).Error("admin server stopped")
	}()

	// START LOAD GENERATOR

	lg := loadGenerator{
		emitter:   e,
		name:      "test",
		rate:      *sampleRate,
		batchSize: *batchSize,
	}
	l := newLoader(*qps, lg.run, *parallelism)
	l.Start()
	start := time.Now()
	logrus.Infof("STARTING // sending to %s at %v qps", *hostport, *qps)

	// HANDLE SIGINT

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	<-signalChan
	e.Flush()

	dur := time.Since(start)
	stats := e.Stats()
	logrus.WithFields(logrus.Fields{
		"transmitted": stats.Transmitted,
		"failed":      stats.Failed,
		"sampled_out": stats.SampledOut,
	}).Infof(
		"FINISHED // made %d requests in %s // achieved %d qps",
		atomic.LoadUint64(l.requestCount),
		dur,
		atomic.LoadUint64(l.requestCount)/uint64(math.Max(1, math.Round(dur.Seconds()))),
	)
}

/*
 LOAD GENERATOR
*/

type loader struct {
	cb          func()
	limiter     *rate.Limiter
	parallelism int

	requestCount *uint64
}

func newLoader(qps int, cb func(), parallelism int) loader {
	return loader{
		cb:           cb,
		limiter:      rate.NewLimiter(rate.Limit(qps), qps),
		parallelism:  parallelism,
		requestCount: new(uint64),
	}
}

func (l *loader) Start() {
	for i := 0; i < l.parallelism; i++ {
		go l.runner()
	}
}

func (l *loader) runner() {
	for {
		ctx, task := trace.NewTask(context.Background(), "trace callback")
		if err := l.limiter.Wait(ctx); err != nil {
			logrus.WithError(err).Fatal("error getting rate limit")
		}
		trace.WithRegion(ctx, "loaderCallback", l.cb)
		atomic.AddUint64(l.requestCount, 1)
		task.End()
	}
}

/*
 * CONNECTIONS
 */

// roundRobinTransport spreads datagrams for one destination over several
// UDP sockets.
//
// this strategy scales better but causes contention on individual FDs.
type roundRobinTransport struct {
	conns []emitter.Transport
	count *uint64
}

func newRoundRobinTransport(nConns int, hostport string) (roundRobinTransport, error) {
	if nConns < 1 {
		nConns = 1
	}
	var conns []emitter.Transport
	for i := 0; i < nConns; i++ {
		udp, err := transport.Dial(hostport, time.Second)
		if err != nil {
			return roundRobinTransport{}, err
		}
		conns = append(conns, udp)
	}
	return roundRobinTransport{conns: conns, count: new(uint64)}, nil
}

func (r roundRobinTransport) Transmit(payload string) error {
	ind := atomic.AddUint64(r.count, 1) % uint64(len(r.conns))
	return r.conns[ind].Transmit(payload)
}

/*
 * REQUEST CODE
 */

type loadGenerator struct {
	emitter   *emitter.Emitter
	name      string
	rate      float64
	batchSize int
}

func (g loadGenerator) run() {
	if g.batchSize <= 1 {
		g.emitter.Count(g.name, 10, g.rate)
		return
	}
	g.emitter.AddCount(g.name, 10, g.rate)
	// Flushing on the buffer length is approximate under concurrency,
	// which is fine for generating load.
	if g.emitter.Len() >= g.batchSize {
		g.emitter.Flush()
	}
}
