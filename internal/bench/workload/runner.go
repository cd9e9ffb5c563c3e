// Package workload drives concurrent producer/consumer load.
package workload

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/synckit-go/internal/telemetry/logger"
	"github.com/yndnr/synckit-go/internal/telemetry/metric"
	"github.com/yndnr/synckit-go/pkg/rwmap"
	"github.com/yndnr/synckit-go/pkg/waitqueue"
)

// Defaults used by DefaultConfig.
const (
	DefaultProducers       = 4
	DefaultConsumers       = 4
	DefaultJobsPerProducer = 100000
	DefaultPopTimeout      = waitqueue.DefaultPopTimeout
	DefaultKeySpace        = 1024
)

// Config configures a workload run.
type Config struct {
	Producers       int
	Consumers       int
	JobsPerProducer int

	// PushRate limits each producer to this many pushes per second.
	// Zero means unlimited.
	PushRate int

	PopTimeout time.Duration
	KeySpace   int

	ReplaceExisting bool
	FailOnCollision bool

	// Duration caps the wall-clock run time. Zero means run until all
	// producers finish and the queue drains.
	Duration time.Duration
}

// DefaultConfig returns the default workload configuration.
func DefaultConfig() Config {
	return Config{
		Producers:       DefaultProducers,
		Consumers:       DefaultConsumers,
		JobsPerProducer: DefaultJobsPerProducer,
		PopTimeout:      DefaultPopTimeout,
		KeySpace:        DefaultKeySpace,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Producers == 0 {
		cfg.Producers = DefaultProducers
	}
	if cfg.Consumers == 0 {
		cfg.Consumers = DefaultConsumers
	}
	if cfg.JobsPerProducer == 0 {
		cfg.JobsPerProducer = DefaultJobsPerProducer
	}
	if cfg.PopTimeout == 0 {
		cfg.PopTimeout = DefaultPopTimeout
	}
	if cfg.KeySpace == 0 {
		cfg.KeySpace = DefaultKeySpace
	}
}

// Runner owns the queue and record map for one workload run.
type Runner struct {
	cfg     Config
	queue   *waitqueue.Queue[Job]
	records *rwmap.Map[uint64, Record]
	log     logger.Logger
	metrics *metric.Registry

	pushed     atomic.Uint64
	popped     atomic.Uint64
	misses     atomic.Uint64
	collisions atomic.Uint64
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithMetrics wires workload counters into a metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a workload runner.
func NewRunner(cfg Config, opts ...Option) *Runner {
	applyDefaults(&cfg)

	r := &Runner{
		cfg:     cfg,
		queue:   waitqueue.New[Job](),
		records: rwmap.New[uint64, Record](),
		log:     logger.Default(),
	}
	r.records.SetReplaceExisting(cfg.ReplaceExisting)
	r.records.SetFailOnCollision(cfg.FailOnCollision)

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Queue returns the job queue, for diagnostics.
func (r *Runner) Queue() *waitqueue.Queue[Job] {
	return r.queue
}

// Records returns the record map, for diagnostics.
func (r *Runner) Records() *rwmap.Map[uint64, Record] {
	return r.records
}

// ApplyPolicies switches the record map collision policies.
// Safe to call while the workload is running.
func (r *Runner) ApplyPolicies(replaceExisting, failOnCollision bool) {
	r.records.SetReplaceExisting(replaceExisting)
	r.records.SetFailOnCollision(failOnCollision)
	r.log.Info("collision policies applied",
		"replace_existing", replaceExisting,
		"fail_on_collision", failOnCollision,
	)
}

// Run executes the workload and blocks until it completes.
//
// Run returns a partial Result together with context.Canceled when the
// context is canceled mid-run. Expiry of the configured Duration is a
// normal end of run, not an error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	r.log.Info("workload starting",
		"producers", r.cfg.Producers,
		"consumers", r.cfg.Consumers,
		"jobs_per_producer", r.cfg.JobsPerProducer,
		"push_rate", r.cfg.PushRate,
		"key_space", r.cfg.KeySpace,
	)

	producersDone := make(chan struct{})

	var producers sync.WaitGroup
	for p := 0; p < r.cfg.Producers; p++ {
		producers.Add(1)
		go func(id int) {
			defer producers.Done()
			r.produce(ctx, id)
		}(p)
	}

	var consumers sync.WaitGroup
	for c := 0; c < r.cfg.Consumers; c++ {
		consumers.Add(1)
		go func(id int) {
			defer consumers.Done()
			r.consume(ctx, id, producersDone)
		}(c)
	}

	producers.Wait()
	close(producersDone)
	consumers.Wait()

	res := r.result(time.Since(start))
	r.log.Info("workload finished",
		"pushed", res.Pushed,
		"popped", res.Popped,
		"misses", res.Misses,
		"collisions", res.Collisions,
		"records", res.Records,
		"elapsed", res.Elapsed,
	)

	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return res, err
	}
	return res, nil
}

// produce pushes jobs until the quota is reached or the context ends.
func (r *Runner) produce(ctx context.Context, id int) {
	entropy := ulid.Monotonic(rand.Reader, 0)

	var limiter *rate.Limiter
	if r.cfg.PushRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.PushRate), 1)
	}

	var pushed int
	for seq := 0; seq < r.cfg.JobsPerProducer; seq++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		jobID, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
		job := Job{
			ID:       jobID,
			Producer: id,
			Seq:      seq,
		}

		opStart := time.Now()
		r.queue.Push(job)
		r.pushed.Add(1)
		pushed++

		if r.metrics != nil {
			r.metrics.IncJobsPushed()
			r.metrics.ObserveOpDuration("push", time.Since(opStart).Seconds())
		}
	}

	r.log.Debug("producer finished", "producer", id, "pushed", pushed)
}

// consume pops jobs until the context ends, or until all producers
// finished and the queue drained.
func (r *Runner) consume(ctx context.Context, id int, producersDone <-chan struct{}) {
	var popped int
	for {
		if ctx.Err() != nil {
			break
		}

		opStart := time.Now()
		job, ok := r.queue.Pop(r.cfg.PopTimeout)
		if ok {
			r.popped.Add(1)
			popped++
			if r.metrics != nil {
				r.metrics.IncJobsPopped()
				r.metrics.ObserveOpDuration("pop", time.Since(opStart).Seconds())
			}
			r.fold(job)
			continue
		}

		// Miss: either a quiet period or the end of the run.
		r.misses.Add(1)
		if r.metrics != nil {
			r.metrics.IncPopMiss()
		}

		select {
		case <-producersDone:
			if r.queue.Len() == 0 {
				r.log.Debug("consumer finished", "consumer", id, "popped", popped)
				return
			}
		default:
		}
	}

	r.log.Debug("consumer stopped", "consumer", id, "popped", popped)
}

// fold inserts the job into the record map under its derived key.
func (r *Runner) fold(job Job) {
	key := RecordKey(job.ID, r.cfg.KeySpace)

	rec, ok := r.records.AddFunc(key, func(uint64) *Record {
		return &Record{}
	})
	if !ok {
		// Rejected by the fail-on-collision policy.
		r.collisions.Add(1)
		if r.metrics != nil {
			r.metrics.IncCollision()
		}
		return
	}

	rec.note(job.ID)
}
