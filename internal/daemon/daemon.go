package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memoir-app/memoir/internal/api"
	"github.com/memoir-app/memoir/internal/app/study"
	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/notify"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// Daemon is the Memoir runtime. It wires storage, the study services,
// and the HTTP API together.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server

	Sessions      *study.SessionService
	Badges        *study.BadgeService
	Goals         *study.GoalService
	Subjects      *study.SubjectService
	Notifications *study.NotificationService
	Summary       *study.SummaryService

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = memoirHome()
	}
	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	userID := cfg.User.ID
	if userID == "" {
		userID = "local"
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notifications.Desktop {
		notifier = notify.NewDesktop()
	}

	d := &Daemon{Config: cfg, DB: db}
	d.Sessions = study.NewSessionService(db, userID)
	d.Notifications = study.NewNotificationServiceWithPolicy(db, userID, notifier, cfg.Notifications.Policy())
	d.Badges = study.NewBadgeService(db, userID, d.Notifications)
	d.Goals = study.NewGoalService(db, userID)
	d.Subjects = study.NewSubjectService(db, userID)
	d.Summary = study.NewSummaryService(db, userID, d.Goals, d.Badges)

	// Seed goals from config on first run only; stored preferences win.
	if err := d.seedGoals(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed goals: %w", err)
	}

	srv := api.NewServer(d.Sessions, d.Badges, d.Goals, d.Subjects, d.Notifications, d.Summary)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// seedGoals writes the config's goal targets into the preference store
// if nothing has been stored yet.
func (d *Daemon) seedGoals() error {
	if d.Config.Goals == (GoalsConfig{}) {
		return nil
	}
	stored, err := d.Goals.Get()
	if err != nil {
		return err
	}
	if stored != domain.DefaultGoals() {
		return nil // User already changed something
	}
	seed := d.Config.Goals.GoalSet()
	if err := seed.Validate(); err != nil {
		log.Printf("[daemon] ignoring invalid goal seed from config: %v", err)
		return nil
	}
	return d.Goals.Set(seed)
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Memoir serving on http://%s\n", addr)
	if d.Config.API.Metrics {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
