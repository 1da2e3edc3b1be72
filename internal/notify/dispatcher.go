package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const deliverTimeout = 10 * time.Second

// Dispatcher is the in-process worker loop behind the Queue interface.
// Jobs are routed by kind to a Sink; delivery failures are logged and
// swallowed, they never reach the request path that enqueued the job.
type Dispatcher struct {
	log    *slog.Logger
	routes map[Kind]Sink

	jobs chan Job
	once sync.Once
	wg   sync.WaitGroup
}

func NewDispatcher(log *slog.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		log:    log,
		routes: make(map[Kind]Sink),
		jobs:   make(chan Job, buffer),
	}
}

// Route binds a job kind to a sink. Must be called before Start.
func (d *Dispatcher) Route(kind Kind, s Sink) {
	d.routes[kind] = s
}

func (d *Dispatcher) Enqueue(ctx context.Context, kind Kind, payload any) error {
	if _, ok := d.routes[kind]; !ok {
		return fmt.Errorf("notify: no sink for kind %q", kind)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}
	job := Job{ID: uuid.New(), Kind: kind, Payload: data}

	select {
	case d.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		d.log.Warn("notify_queue_full", "kind", string(kind), "job_id", job.ID.String())
		return fmt.Errorf("notify: queue full")
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for job := range d.jobs {
			d.deliver(job)
		}
	}()
}

func (d *Dispatcher) deliver(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	sink := d.routes[job.Kind]
	if err := sink.Deliver(ctx, job); err != nil {
		d.log.Error("notify_deliver_failed",
			"kind", string(job.Kind),
			"job_id", job.ID.String(),
			"error", err)
		return
	}
	d.log.Info("notify_delivered", "kind", string(job.Kind), "job_id", job.ID.String())
}

// Close stops accepting jobs and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.jobs) })
	d.wg.Wait()
}
