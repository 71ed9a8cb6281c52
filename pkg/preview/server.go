package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/history"
	"github.com/vango-dev/hyperoop/pkg/loop"
	"github.com/vango-dev/hyperoop/pkg/render"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// Options configures a Server.
type Options struct {
	// Title is the page title (default: "hyperoop").
	Title string

	// History enables /undo and /redo.
	History *history.Log

	// Markup is loaded into the container before the first pass, which
	// then recycles it.
	Markup string

	// Registry enables render metrics and the metrics route.
	Registry *prometheus.Registry

	// MetricsNamespace is the metrics namespace (default: "hyperoop").
	MetricsNamespace string

	// MetricsPath is the metrics route (default: "/metrics").
	MetricsPath string

	// DispatchRate limits dispatch, undo and redo requests per second.
	// Zero means no limit.
	DispatchRate rate.Limit

	// DispatchBurst is the burst allowed above DispatchRate (default: 1).
	DispatchBurst int

	Logger *slog.Logger
}

// Message is sent to websocket clients.
type Message struct {
	Type   string `json:"type"`
	Pass   int    `json:"pass,omitempty"`
	Markup string `json:"markup,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Message types.
const (
	MessageRender = "render"
	MessageError  = "error"
)

// DispatchRequest is the body of POST /dispatch.
type DispatchRequest struct {
	Selector string  `json:"selector"`
	Type     string  `json:"type"`
	Value    *string `json:"value,omitempty"`
	Key      string  `json:"key,omitempty"`
}

// Status is the body of GET /status.
type Status struct {
	Passes  int `json:"passes"`
	Undo    int `json:"undo"`
	Redo    int `json:"redo"`
	Clients int `json:"clients"`
}

// Server hosts one app.
type Server struct {
	opts     Options
	doc      *memdom.Document
	body     *memdom.Element
	loop     *loop.Loop
	renderer *render.Renderer
	logger   *slog.Logger
	router   chi.Router

	limiter *rate.Limiter

	mu       sync.RWMutex
	clients  map[*websocket.Conn]string
	upgrader websocket.Upgrader
}

// New mounts view into a fresh document. The first pass runs once Run
// drives the loop.
func New(view vdom.Lazy, actions render.ActionInitializer, opts Options) (*Server, error) {
	if opts.Title == "" {
		opts.Title = "hyperoop"
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.MetricsNamespace == "" {
		opts.MetricsNamespace = "hyperoop"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		opts:    opts,
		doc:     memdom.NewDocument(),
		logger:  opts.Logger,
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.body = s.doc.Body()
	if opts.DispatchRate > 0 {
		burst := opts.DispatchBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(opts.DispatchRate, burst)
	}
	if opts.Markup != "" {
		if err := s.body.SetInnerHTML(opts.Markup); err != nil {
			return nil, err
		}
	}

	s.loop = loop.New(loop.WithLogger(s.logger))
	renderOpts := []render.Option{
		render.WithScheduler(s.loop),
		render.WithLogger(s.logger),
		render.WithAfterRender(s.afterRender),
	}
	if opts.Registry != nil {
		renderOpts = append(renderOpts, render.WithMetrics(render.NewMetrics(
			render.WithRegistry(opts.Registry),
			render.WithNamespace(opts.MetricsNamespace),
		)))
	}
	s.renderer = render.Init(s.body, view, actions, renderOpts...)

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/markup", s.handleMarkup)
	r.Get("/status", s.handleStatus)
	r.Group(func(r chi.Router) {
		r.Use(s.limit)
		r.Post("/dispatch", s.handleDispatch)
		r.Post("/undo", s.handleHistory((*history.Log).Undo))
		r.Post("/redo", s.handleHistory((*history.Log).Redo))
	})
	r.Get("/ws", s.handleWebSocket)
	if s.opts.Registry != nil {
		r.Handle(s.opts.MetricsPath, promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Renderer returns the app's renderer.
func (s *Server) Renderer() *render.Renderer {
	return s.renderer
}

// Run drives the loop until ctx is cancelled, then closes every client.
func (s *Server) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)
	s.Close()
	return err
}

// do runs fn on the loop and waits for it. Called from a loop task, it runs
// fn directly.
func (s *Server) do(ctx context.Context, fn func()) error {
	if s.loop.OnLoop() {
		fn()
		return nil
	}
	done := make(chan struct{})
	s.loop.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) markup(ctx context.Context) (string, error) {
	var out string
	err := s.do(ctx, func() { out = s.body.InnerHTML() })
	return out, err
}

func (s *Server) afterRender(_ *vdom.VNode, err error) {
	if err != nil {
		s.broadcast(Message{Type: MessageError, Error: err.Error()})
		return
	}
	s.broadcast(Message{Type: MessageRender, Pass: s.renderer.Passes(), Markup: s.body.InnerHTML()})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	markup, err := s.markup(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, html.EscapeString(s.opts.Title), markup)
}

func (s *Server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	markup, err := s.markup(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var st Status
	err := s.do(r.Context(), func() {
		st.Passes = s.renderer.Passes()
		if h := s.opts.History; h != nil {
			st.Undo = h.UndoLength()
			st.Redo = h.RedoLength()
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	st.Clients = s.ClientCount()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid dispatch request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Selector == "" || req.Type == "" {
		http.Error(w, "selector and type are required", http.StatusBadRequest)
		return
	}

	found := false
	err := s.do(r.Context(), func() {
		el := s.body.QuerySelector(req.Selector)
		if el == nil {
			return
		}
		found = true
		if req.Value != nil {
			el.SetProperty("value", *req.Value)
		}
		ev := memdom.NewEvent(req.Type)
		ev.Key = req.Key
		el.Dispatch(ev)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !found {
		s.logger.Warn("dispatch target not found", "selector", req.Selector, "type", req.Type)
		http.Error(w, "no element matches "+req.Selector, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHistory(step func(*history.Log)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := s.opts.History
		if h == nil {
			http.Error(w, "app has no history", http.StatusNotFound)
			return
		}
		if err := s.do(r.Context(), func() { step(h) }); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// limit rejects requests above the dispatch rate.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
