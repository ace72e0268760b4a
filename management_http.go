package factorcache

import (
	"context"
	"net"
	"time"

	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/factorcache/internal/libs/serializer"
	"github.com/hyp3rd/factorcache/internal/sentinel"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
	"github.com/hyp3rd/factorcache/types"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer holds the Fiber app and settings.
type ManagementHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	serializers  *serializer.Registry
	ln           net.Listener
	started      bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReadTimeout sets read timeout.
func WithMgmtReadTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.readTimeout = d }
}

// WithMgmtWriteTimeout sets write timeout.
func WithMgmtWriteTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.writeTimeout = d }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	app := fiber.New(fiber.Config{
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	srv := &ManagementHTTPServer{
		addr:         addr,
		app:          app,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		serializers:  serializer.NewSerializerRegistry(),
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	return srv
}

// managementCache is the introspection surface the handlers need.
type managementCache interface {
	GetStats() stats.Stats
	EvictionState() eviction.Stats
	EvictionAlgorithm() string
	Capacity() int
	Count(ctx context.Context) int
	Entries(sortBy types.SortingField, ascending bool) []eviction.EntryInfo
	TriggerEviction(ctx context.Context) (string, bool)
	Remove(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// Start launches the listener (idempotent). The caller provides the cache for handler wiring.
func (s *ManagementHTTPServer) Start(ctx context.Context, fc managementCache) error {
	if s.started { // idempotent
		return nil
	}

	s.mountRoutes(ctx, fc)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() { // serve in background (optional server errors are ignored intentionally)
		err = s.app.Listener(ln)
		if err != nil {
			_ = err
		}
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for an ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

// mountRoutes registers endpoints onto the Fiber app.
func (s *ManagementHTTPServer) mountRoutes(ctx context.Context, fc managementCache) {
	useAuth := s.wrapAuth
	s.registerIntrospection(useAuth, fc)
	s.registerControl(ctx, useAuth, fc)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler {
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerIntrospection(useAuth func(fiber.Handler) fiber.Handler, fc managementCache) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/stats", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(fc.GetStats()) }))
	s.app.Get("/eviction", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.JSON(fc.EvictionState()) }))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		cfg := map[string]any{
			"capacity":          fc.Capacity(),
			"count":             fc.Count(fiberCtx.Context()),
			"evictionAlgorithm": fc.EvictionAlgorithm(),
		}

		return fiberCtx.JSON(cfg)
	}))
	s.app.Get("/keys", useAuth(func(fiberCtx fiber.Ctx) error {
		sortBy := types.SortingField(fiberCtx.Query("sort", types.SortByKey.String()))
		ascending := fiberCtx.Query("order", "asc") != "desc"

		entries := fc.Entries(sortBy, ascending)

		return fiberCtx.JSON(fiber.Map{"count": len(entries), "entries": entries})
	}))
	s.app.Get("/export", useAuth(func(fiberCtx fiber.Ctx) error {
		format := fiberCtx.Query("format", "json")

		ser, err := s.serializers.New(format)
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown format"})
		}

		snapshot := map[string]any{
			"stats":    fc.GetStats(),
			"eviction": fc.EvictionState(),
		}

		data, err := ser.Marshal(snapshot)
		if err != nil {
			return fiberCtx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		if format == "json" || format == "default" {
			fiberCtx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		} else {
			fiberCtx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		}

		return fiberCtx.Send(data)
	}))
}

func (s *ManagementHTTPServer) registerControl(
	ctx context.Context,
	useAuth func(fiber.Handler) fiber.Handler,
	fc managementCache,
) {
	s.app.Post("/evict", useAuth(func(fiberCtx fiber.Ctx) error {
		key, ok := fc.TriggerEviction(ctx)

		return fiberCtx.Status(fiber.StatusAccepted).JSON(fiber.Map{"evicted": key, "ok": ok})
	}))
	s.app.Delete("/keys/:key", useAuth(func(fiberCtx fiber.Ctx) error {
		key := fiberCtx.Params("key")
		if key == "" {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing key"})
		}

		removeErr := fc.Remove(ctx, key)
		if removeErr != nil {
			return removeErr
		}

		return fiberCtx.SendStatus(fiber.StatusOK)
	}))
	s.app.Post("/clear", useAuth(func(fiberCtx fiber.Ctx) error {
		clearErr := fc.Clear(ctx)
		if clearErr != nil {
			return clearErr
		}

		return fiberCtx.SendStatus(fiber.StatusOK)
	}))
}
