package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/observability"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// HealthChecker probes the upstream telemetry API.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HistoryReader lists archived snapshots, newest first.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]domain.SnapshotRecord, error)
}

type Options struct {
	Store    *dashboard.Store
	Health   HealthChecker
	History  HistoryReader // nil when the archive is disabled
	Metrics  *observability.Metrics
	Location *time.Location
}

type Server struct {
	app     *fiber.App
	tmpl    *template.Template
	store   *dashboard.Store
	health  HealthChecker
	history HistoryReader
	metrics *observability.Metrics
	loc     *time.Location

	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
}

// writeWait bounds each websocket write so a stalled client cannot hold up a
// broadcast.
const writeWait = 5 * time.Second

type message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type state struct {
	Loading  bool                `json:"loading"`
	Snapshot *dashboard.Snapshot `json:"snapshot,omitempty"`
}

func New(opts Options) *Server {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
		store:   opts.Store,
		health:  opts.Health,
		history: opts.History,
		metrics: opts.Metrics,
		loc:     loc,
		clients: make(map[*websocket.Conn]bool),
	}

	s.routes()
	s.store.Subscribe(s.broadcastLoaded)
	return s
}

func (s *Server) routes() {
	static, _ := fs.Sub(staticFS, "static")
	s.app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(static)}))

	s.app.Get("/", s.handleDashboard)
	s.app.Get("/dashboard", s.handleDashboard)
	s.app.Get("/healthz", s.handleHealthz)
	s.app.Get("/api/snapshot", s.handleSnapshot)
	s.app.Get("/api/history", s.handleHistory)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws", websocket.New(s.handleWebSocket))
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

func (s *Server) handleWebSocket(conn *websocket.Conn) {
	s.clientsMu.Lock()
	s.clients[conn] = true
	err := writeJSON(conn, message{Type: "init", Data: s.state()})
	s.clientsMu.Unlock()
	s.metrics.ClientConnected()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		s.metrics.ClientDisconnected()
		conn.Close()
	}()

	if err != nil {
		log.Debug().Err(err).Msg("websocket init write failed")
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) broadcastLoaded(snap *dashboard.Snapshot) {
	msg := message{Type: "loaded", Data: snap}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := writeJSON(conn, msg); err != nil {
			log.Debug().Err(err).Msg("websocket broadcast failed")
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (s *Server) state() state {
	snap := s.store.Current()
	return state{Loading: snap == nil, Snapshot: snap}
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	page := view.Build(s.store.Current(), s.loc)
	page.APIStatus = s.status(c.UserContext())
	return s.render(c, "dashboard.html", page)
}

func (s *Server) handleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  s.status(c.UserContext()),
		"loading": s.store.Loading(),
	})
}

func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	snap := s.store.Current()
	if snap == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(snap)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	if s.history == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snapshot archive disabled"})
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 500"})
	}
	items, err := s.history.Recent(c.UserContext(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history query failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if items == nil {
		items = []domain.SnapshotRecord{}
	}
	return c.JSON(items)
}

func (s *Server) status(ctx context.Context) string {
	if s.health == nil {
		return "offline"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.health.Health(ctx); err != nil {
		return "offline"
	}
	return "online"
}

func (s *Server) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render error")
		return c.Status(fiber.StatusInternalServerError).SendString("template error")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
