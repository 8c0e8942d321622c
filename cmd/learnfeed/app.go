package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/learnfeed/internal/application/settings"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/infrastructure/api"
	"github.com/tesso57/learnfeed/internal/infrastructure/config"
	"github.com/tesso57/learnfeed/internal/infrastructure/push"
	"github.com/tesso57/learnfeed/internal/infrastructure/state"
	"github.com/tesso57/learnfeed/internal/presentation/tui"
	"github.com/tesso57/learnfeed/internal/presentation/tui/update"
)

const shutdownGrace = 3 * time.Second

// ReadCmd runs the interactive feed.
type ReadCmd struct{}

// Run starts the TUI and blocks until it exits.
func (c *ReadCmd) Run(cli *CLI) error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := store.Settings

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()
	log.Printf("config: loaded %s", store.Path())

	db, err := state.Open(cfg.StateFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("state: close: %v", err)
		}
	}()

	client := api.NewClient(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		seedCtx, seedCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer seedCancel()
		usecase.SeedCatalog(seedCtx, client)
	}()

	events := listen(ctx, client.BaseURL(), cfg.Push)
	engagementSvc := usecase.NewEngagementService(client, db, cfg.ReadingRules(), time.Now)
	deps := update.Deps{
		Loader:     usecase.NewFeedLoader(client, db),
		Engagement: engagementSvc,
		Aggregates: usecase.NewAggregateSync(client, db),
		Identity:   db,
		Events:     events,
		Timeout:    cfg.RequestTimeout,
	}

	model := tui.NewModel(cfg, deps)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	model.Shutdown()
	cancel()
	waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer waitCancel()
	engagementSvc.Wait(waitCtx)

	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}

// SeedCmd triggers catalog seeding.
type SeedCmd struct{}

// Run posts the seed request and reports failures.
func (c *SeedCmd) Run(cli *CLI) error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client := api.NewClient(store.Settings.APIURL, api.WithTimeout(store.Settings.RequestTimeout))
	if err := client.Seed(context.Background()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Println("Seeded", client.BaseURL())
	return nil
}

// WhoamiCmd prints the persisted user id.
type WhoamiCmd struct{}

// Run prints the user id, creating it on first use.
func (c *WhoamiCmd) Run(cli *CLI) error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := state.Open(store.Settings.StateFile)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.UserID()
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// listen starts the push listener. The returned channel is closed once the
// listener stops for good.
func listen(ctx context.Context, apiBase string, cfg settings.PushConfig) <-chan learning.Event {
	events := make(chan learning.Event, 16)
	listener, err := push.NewListener(apiBase, retryPolicy(cfg))
	if err != nil {
		log.Printf("push: %v", err)
		close(events)
		return events
	}
	go func() {
		defer close(events)
		if err := listener.Run(ctx, events); err != nil {
			log.Printf("push: %v", err)
		}
	}()
	return events
}

func retryPolicy(cfg settings.PushConfig) push.RetryPolicy {
	policy := push.DefaultRetryPolicy()
	if cfg.MaxRetries >= 0 {
		policy.MaxRetries = cfg.MaxRetries
	}
	if cfg.InitialInterval > 0 {
		policy.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		policy.MaxInterval = cfg.MaxInterval
	}
	if cfg.StableAfter > 0 {
		policy.StableAfter = cfg.StableAfter
	}
	return policy
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
