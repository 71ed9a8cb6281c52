package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/loop"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// Default tracer name for render spans.
const defaultTracerName = "hyperoop"

// ActionInitializer is attached to the renderer at the start of every pass.
type ActionInitializer interface {
	Init(r action.Renderer)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScheduler sets where render tasks are posted. The caller then drives
// the scheduler. Without this option the renderer owns a loop.Loop that runs
// on its own goroutine from the first scheduled pass until Close; that
// goroutine is then the only one that may touch the container.
func WithScheduler(s loop.Scheduler) Option {
	return func(r *Renderer) {
		r.scheduler = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records render metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for render spans. The default resolves
// otel.Tracer("hyperoop") from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithErrorHandler receives errors from scheduled passes. The default logs
// them at Error level.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Renderer) {
		r.onError = fn
	}
}

// WithAfterRender registers fn to run after every pass, once its lifecycle
// callbacks have drained.
func WithAfterRender(fn func(node *vdom.VNode, err error)) Option {
	return func(r *Renderer) {
		r.afterRender = append(r.afterRender, fn)
	}
}

// Renderer keeps one container in sync with a view.
type Renderer struct {
	container dom.Element
	view      vdom.Lazy
	actions   ActionInitializer

	root      dom.Node
	old       *vdom.VNode
	recycling bool
	lifecycle []func()
	events    map[dom.Element]map[string]any
	listener  *dispatcher

	mu      sync.Mutex
	pending bool
	passes  int

	scheduler   loop.Scheduler
	own         *loop.Loop
	startOwn    sync.Once
	stopOwn     context.CancelFunc
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	onError     func(error)
	afterRender []func(*vdom.VNode, error)
}

// New creates a renderer without scheduling the first pass. A nil container
// renders headless: the view runs but no DOM is touched. A nil actions
// renders a static view.
//
// When the container already has an element child, it is recycled by the
// first pass.
func New(container dom.Element, view vdom.Lazy, actions ActionInitializer, opts ...Option) *Renderer {
	r := &Renderer{
		container: container,
		view:      view,
		actions:   actions,
		recycling: true,
		events:    make(map[dom.Element]map[string]any),
		logger:    slog.Default(),
	}
	r.listener = &dispatcher{r: r}
	for _, opt := range opts {
		opt(r)
	}
	if r.scheduler == nil {
		r.own = loop.New(loop.WithLogger(r.logger))
		r.scheduler = r.own
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}
	if r.onError == nil {
		r.onError = func(err error) {
			r.logger.Error("render failed", "error", err)
		}
	}

	if container != nil {
		if root := dom.FirstElementChild(container); root != nil {
			r.root = root
			r.old = elementToVNode(root)
		}
	}
	return r
}

// Init creates a renderer and schedules its first pass.
func Init(container dom.Element, view vdom.Lazy, actions ActionInitializer, opts ...Option) *Renderer {
	r := New(container, view, actions, opts...)
	r.ScheduleRender()
	return r
}

// Scheduler returns where render tasks are posted.
func (r *Renderer) Scheduler() loop.Scheduler {
	return r.scheduler
}

// Container returns the mount container, or nil when headless.
func (r *Renderer) Container() dom.Element {
	return r.container
}

// Tree returns the tree patched by the last pass.
func (r *Renderer) Tree() *vdom.VNode {
	return r.old
}

// Passes returns how many render passes have run.
func (r *Renderer) Passes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passes
}

// Pending reports whether a pass is scheduled and has not started yet.
func (r *Renderer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// ScheduleRender posts one render task unless one is already pending.
func (r *Renderer) ScheduleRender() {
	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return
	}
	r.pending = true
	r.mu.Unlock()

	r.scheduler.Dispatch(r.renderTask)
	r.startLoop()
}

// startLoop runs the owned loop, once.
func (r *Renderer) startLoop() {
	if r.own == nil {
		return
	}
	r.startOwn.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		r.stopOwn = cancel
		go r.own.Run(ctx)
	})
}

// Close stops the loop the renderer owns. Passes still queued are dropped.
// It has no effect when the scheduler came from WithScheduler.
func (r *Renderer) Close() {
	r.startOwn.Do(func() {})
	if r.stopOwn != nil {
		r.stopOwn()
	}
}

func (r *Renderer) renderTask() {
	if _, err := r.Render(); err != nil {
		r.onError(err)
	}
}

// Render runs one pass: it attaches the actions, resolves the view, patches
// the container and drains the lifecycle queue. When the view schedules
// another render while it is being evaluated, the patch is left to that
// pending pass. A patch error ends the pass before the queue is drained.
func (r *Renderer) Render() (*vdom.VNode, error) {
	start := time.Now()
	_, span := r.tracer.Start(context.Background(), "hyperoop.render",
		trace.WithAttributes(
			attribute.Bool("hyperoop.recycling", r.recycling),
			attribute.Bool("hyperoop.headless", r.container == nil),
		),
	)
	defer span.End()

	r.mu.Lock()
	r.pending = false
	r.passes++
	r.mu.Unlock()

	if r.actions != nil {
		r.actions.Init(r)
	}
	node := vdom.ResolveLazy(r.view)

	skipped := r.Pending()
	span.SetAttributes(attribute.Bool("hyperoop.skipped", skipped))

	if r.container != nil && !skipped {
		old := r.old
		r.old = node
		root, err := r.patch(r.container, r.root, old, node, false)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.metrics.observeRender(time.Since(start), err)
			r.notifyAfterRender(node, err)
			return node, err
		}
		r.root = root
	} else if skipped {
		r.metrics.skip()
	}

	r.recycling = false
	r.drainLifecycle()

	r.metrics.observeRender(time.Since(start), nil)
	r.logger.Debug("render pass", "pass", r.Passes(), "skipped", skipped, "duration", time.Since(start))
	r.notifyAfterRender(node, nil)
	return node, nil
}

// drainLifecycle runs queued callbacks, last queued first.
func (r *Renderer) drainLifecycle() {
	for len(r.lifecycle) > 0 {
		n := len(r.lifecycle) - 1
		fn := r.lifecycle[n]
		r.lifecycle[n] = nil
		r.lifecycle = r.lifecycle[:n]
		fn()
		r.metrics.callback()
	}
}

func (r *Renderer) notifyAfterRender(node *vdom.VNode, err error) {
	for _, fn := range r.afterRender {
		fn(node, err)
	}
}

// document returns the document owning the container.
func (r *Renderer) document() dom.Document {
	return r.container.OwnerDocument()
}
