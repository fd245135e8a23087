package notify

import (
	"context"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/sirupsen/logrus"
)

// Job is a single outbound notification. It gets its own timeout context
// because the request that queued it may already be finished.
type Job func(ctx context.Context) error

type IDispatcher interface {
	Submit(name string, job Job)
	Stop()
}

type dispatcher struct {
	pool    *workerpool.WorkerPool
	log     *logrus.Logger
	timeout time.Duration
}

func NewDispatcher(log *logrus.Logger, workers int, timeout time.Duration) IDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &dispatcher{
		pool:    workerpool.New(workers),
		log:     log,
		timeout: timeout,
	}
}

func (d *dispatcher) Submit(name string, job Job) {
	d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			d.log.WithFields(logrus.Fields{
				"job":   name,
				"error": err.Error(),
			}).Error("Notification job failed")
			return
		}

		d.log.WithFields(logrus.Fields{
			"job":        name,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Debug("Notification job done")
	})
}

// Stop waits for queued jobs to drain.
func (d *dispatcher) Stop() {
	d.pool.StopWait()
}

// Inline runs jobs synchronously on the caller's goroutine.
type Inline struct{}

func (Inline) Submit(_ string, job Job) {
	_ = job(context.Background())
}

func (Inline) Stop() {}
