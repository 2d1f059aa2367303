package leads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/blckops/agency-site/internal/observability/metrics"
	"github.com/blckops/agency-site/pkg/logging"
)

var pipelineTracer = otel.Tracer("blckops.internal.leads")

const alertTimeout = 15 * time.Second

// Receipt describes an accepted lead and the sink that stored it.
type Receipt struct {
	Lead Lead
	Sink string
}

// Pipeline validates leads and hands each one to the first sink that
// accepts it. Sinks are tried in order; the local file sink is expected
// last so that a lead is never dropped while the disk is writable.
type Pipeline struct {
	sinks    []Sink
	logger   *logging.Logger
	metrics  *metrics.LeadMetrics
	notifier Notifier
	timeout  time.Duration
	now      func() time.Time
	newID    func() string

	alerts sync.WaitGroup
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records submissions and sink attempts.
func WithMetrics(m *metrics.LeadMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithNotifier sends an alert for every stored lead.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithSinkTimeout bounds each delivery attempt. Zero means no deadline.
func WithSinkTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a pipeline over sinks, tried in order.
func NewPipeline(sinks []Sink, logger *logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Pipeline{
		sinks:  sinks,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return "ld_" + uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SinkNames lists the configured sinks in delivery order.
func (p *Pipeline) SinkNames() []string {
	names := make([]string, len(p.sinks))
	for i, s := range p.sinks {
		names[i] = s.Name()
	}
	return names
}

// Submit validates req, builds the lead and stores it in exactly one sink.
// Sink failures are logged and fall through to the next sink; only when
// every sink fails does Submit return an error wrapping ErrNotDelivered.
func (p *Pipeline) Submit(ctx context.Context, req *SubmitLeadRequest) (*Receipt, error) {
	if err := req.Validate(); err != nil {
		p.metrics.ObserveSubmission("invalid")
		return nil, err
	}

	lead := Lead{
		ID:        p.newID(),
		Name:      req.Name.Trimmed(),
		Email:     req.Email.Trimmed(),
		Phone:     req.Phone.Trimmed(),
		Budget:    req.Budget.Trimmed(),
		Message:   req.Message.Trimmed(),
		CreatedAt: p.now().UTC().Truncate(time.Millisecond),
		SourceIP:  req.SourceIP,
		UserAgent: req.UserAgent,
	}

	// Delivery outlives a disconnected client.
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, sink := range p.sinks {
		ok, err := p.deliver(ctx, sink, lead)
		if err != nil {
			p.logger.Warn("lead sink failed", "sink", sink.Name(), "lead_id", lead.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		if !ok {
			p.logger.Debug("lead sink declined", "sink", sink.Name(), "lead_id", lead.ID)
			continue
		}

		p.metrics.ObserveSubmission("stored")
		p.logger.Info("lead stored", "lead_id", lead.ID, "email", lead.Email, "sink", sink.Name())
		p.alert(lead)
		return &Receipt{Lead: lead, Sink: sink.Name()}, nil
	}

	p.metrics.ObserveSubmission("failed")
	p.logger.Error("lead not stored by any sink", "lead_id", lead.ID, "email", lead.Email, "attempts", len(p.sinks))
	return nil, errors.Join(append([]error{ErrNotDelivered}, errs...)...)
}

func (p *Pipeline) deliver(ctx context.Context, sink Sink, lead Lead) (ok bool, err error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ctx, span := pipelineTracer.Start(ctx, "leads.sink.deliver", trace.WithAttributes(
		attribute.String("blckops.sink", sink.Name()),
		attribute.String("blckops.lead_id", lead.ID),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		// Sink panics count as failures; the next sink still runs.
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("panic: %v", r)
		}
		outcome := "stored"
		switch {
		case err != nil:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case !ok:
			outcome = "declined"
		}
		span.SetAttributes(attribute.String("blckops.outcome", outcome))
		p.metrics.ObserveDelivery(sink.Name(), outcome, time.Since(start).Seconds())
	}()

	return sink.Deliver(ctx, lead)
}

// alert notifies in the background; the caller's response never waits on email.
func (p *Pipeline) alert(lead Lead) {
	if p.notifier == nil {
		return
	}
	p.alerts.Add(1)
	go func() {
		defer p.alerts.Done()
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()
		if err := p.notifier.NotifyLead(ctx, lead); err != nil {
			p.metrics.ObserveAlert("failed")
			p.logger.Warn("lead alert failed", "lead_id", lead.ID, "error", err)
			return
		}
		p.metrics.ObserveAlert("sent")
	}()
}

// Wait blocks until in-flight alerts finish.
func (p *Pipeline) Wait() {
	p.alerts.Wait()
}
