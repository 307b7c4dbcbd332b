package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"

	"github.com/onflow/flow-sha3/crypto/hash"
	"github.com/onflow/flow-sha3/module"
)

const stdinPath = "-"

const readBufferSize = 64 * 1024

// job is one input to hash.
type job struct {
	path      string
	algorithm hash.HashingAlgorithm
	length    int
}

type result struct {
	digest []byte
	err    error
}

// digester hashes inputs with a single reusable context. It is used by one
// goroutine at a time.
type digester struct {
	ctx hash.Context
	buf []byte
}

func newDigester() *digester {
	return &digester{buf: make([]byte, readBufferSize)}
}

func (d *digester) digest(r io.Reader, j job, name, custom []byte) ([]byte, int64, error) {
	defer d.ctx.Free()

	if j.algorithm != hash.CSHAKE128 && j.algorithm != hash.CSHAKE256 {
		name, custom = nil, nil
	}
	if err := d.ctx.StartsCShake(j.algorithm, name, custom); err != nil {
		return nil, 0, err
	}
	n, err := io.CopyBuffer(&d.ctx, r, d.buf)
	if err != nil {
		return nil, n, err
	}
	out := make([]byte, j.length)
	if err := d.ctx.Finish(out); err != nil {
		return nil, n, err
	}
	return out, n, nil
}

// runner hashes batches of inputs on a worker pool.
type runner struct {
	log      zerolog.Logger
	metrics  module.HashMetrics
	stdin    io.Reader
	workers  int
	name     []byte
	custom   []byte
	progress bool
}

func newRunner(log zerolog.Logger, metrics module.HashMetrics, stdin io.Reader, cfg config) *runner {
	return &runner{
		log:      log,
		metrics:  metrics,
		stdin:    stdin,
		workers:  cfg.workers,
		name:     cfg.name,
		custom:   cfg.custom,
		progress: cfg.progress,
	}
}

// digestAll hashes every job and returns the results in job order.
func (r *runner) digestAll(jobs []job) []result {
	results := make([]result, len(jobs))

	// each worker takes a digester for the duration of a job, so contexts
	// are never shared between goroutines
	digesters := make(chan *digester, r.workers)
	for i := 0; i < r.workers; i++ {
		digesters <- newDigester()
	}

	files := atomic.NewInt64(0)
	bytes := atomic.NewInt64(0)
	start := time.Now()

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.Default(int64(len(jobs)), "hashing")
	}

	pool := workerpool.New(r.workers)
	for i := range jobs {
		i := i
		pool.Submit(func() {
			d := <-digesters
			defer func() { digesters <- d }()
			if bar != nil {
				defer func() { _ = bar.Add(1) }()
			}

			digest, n, err := r.digestOne(d, jobs[i])
			results[i] = result{digest: digest, err: err}
			if err != nil {
				r.metrics.HashFailed(jobs[i].algorithm.String())
				r.log.Debug().Err(err).Str("path", jobs[i].path).Msg("could not hash input")
				return
			}
			files.Inc()
			bytes.Add(n)
		})
	}
	pool.StopWait()
	if bar != nil {
		_ = bar.Finish()
	}

	r.log.Info().
		Int64("files", files.Load()).
		Int64("bytes", bytes.Load()).
		Int("failed", len(jobs)-int(files.Load())).
		Dur("duration", time.Since(start)).
		Msg("hashing done")
	return results
}

func (r *runner) digestOne(d *digester, j job) ([]byte, int64, error) {
	start := time.Now()

	var in io.Reader
	if j.path == stdinPath {
		in = r.stdin
	} else {
		f, err := os.Open(j.path)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		in = f
	}

	digest, n, err := d.digest(in, j, r.name, r.custom)
	if err != nil {
		return nil, n, fmt.Errorf("%s: %w", j.path, err)
	}

	elapsed := time.Since(start)
	r.metrics.FileHashed(j.algorithm.String(), n, elapsed)
	r.log.Debug().
		Str("path", j.path).
		Str("algorithm", j.algorithm.String()).
		Int64("bytes", n).
		Dur("duration", elapsed).
		Msg("input hashed")
	return digest, n, nil
}
