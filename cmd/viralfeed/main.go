package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"viralfeed/adapter/article"
	"viralfeed/adapter/gemini"
	"viralfeed/adapter/localblob"
	"viralfeed/adapter/postgres"
	"viralfeed/adapter/rss"
	"viralfeed/app"
	"viralfeed/cli/control"
	"viralfeed/domain"
	"viralfeed/internal/config"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "--help", "-h", "help":
		printHelp()
		return
	case "aggregate":
		err = cmdAggregate(args)
	case "process":
		err = cmdProcess(args)
	case "run":
		err = cmdRun(args)
	case "set-interval":
		err = cmdSetInterval(args)
	case "status":
		err = cmdStatus(args)
	default:
		fmt.Printf("unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`Usage:
  viralfeed COMMAND [OPTIONS]

Commands:
   aggregate       fetch all configured feeds once and store new items
   process         pick one unprocessed item, generate a post and republish the feed
   run             start the background process driving both schedules
   set-interval    change a running schedule (--mode aggregate|process --duration 2h)
   status          show the running schedules and last run times
   help            show this help
`)
}

func cmdAggregate(args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	database, repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ingest := app.NewIngestService(rss.NewHTTPFetcher(), app.NewItemStore(repo), feedURLs(cfg))
	ingest.Run(ctx)
	return nil
}

func cmdProcess(args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	database, repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	process, err := buildProcessService(ctx, cfg, repo)
	if err != nil {
		return err
	}
	return process.Run(ctx)
}

func cmdRun(args []string) error {
	cfg := config.Load()

	listener, err := control.TryListen(cfg.ControlAddr)
	if err != nil {
		if errors.Is(err, control.ErrAlreadyRunning) {
			fmt.Println("Background process is already running")
		}
		return err
	}
	defer listener.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ingest := app.NewIngestService(rss.NewHTTPFetcher(), app.NewItemStore(repo), feedURLs(cfg))
	process, err := buildProcessService(ctx, cfg, repo)
	if err != nil {
		return err
	}

	sched := app.NewScheduler(ingest.Run, process.Run, cfg.AggregateInterval, cfg.ProcessInterval)
	go func() {
		_ = http.Serve(listener, control.NewServer(sched))
	}()

	if err := sched.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Background process started (aggregate every %s, process every %s)\n",
		cfg.AggregateInterval, cfg.ProcessInterval)

	<-ctx.Done()
	_ = sched.Stop()
	fmt.Println("Graceful shutdown: scheduler stopped")
	return nil
}

func cmdSetInterval(args []string) error {
	fset := flag.NewFlagSet("set-interval", flag.ContinueOnError)
	var mode string
	var duration string
	fset.StringVar(&mode, "mode", "", "schedule to change: aggregate or process")
	fset.StringVar(&duration, "duration", "", "new interval (e.g. 2h)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	d, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	c := control.NewClient(config.Load().ControlAddr)
	var old time.Duration
	switch mode {
	case "aggregate":
		old, err = c.SetAggregateInterval(d)
	case "process":
		old, err = c.SetProcessInterval(d)
	default:
		return fmt.Errorf("--mode must be aggregate or process")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Interval of %s schedule changed from %s to %s\n", mode, old, d)
	return nil
}

func cmdStatus(args []string) error {
	c := control.NewClient(config.Load().ControlAddr)
	st, err := c.Status()
	if err != nil {
		return err
	}
	fmt.Printf("aggregate: every %s (last run %s)\n", st.AggregateInterval, st.LastAggregate)
	fmt.Printf("process:   every %s (last run %s)\n", st.ProcessInterval, st.LastProcess)
	return nil
}

func openRepository(ctx context.Context, cfg config.Config) (*sql.DB, *postgres.Repository, error) {
	database, err := postgres.Open(cfg.PostgresDSN())
	if err != nil {
		return nil, nil, err
	}
	repo := postgres.New(database)
	if err := repo.Ensure(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("db ensure failed: %w", err)
	}
	return database, repo, nil
}

func buildProcessService(ctx context.Context, cfg config.Config, repo domain.Repository) (*app.ProcessService, error) {
	gen, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	blob, err := localblob.New(cfg.FeedDir)
	if err != nil {
		return nil, err
	}

	store := app.NewItemStore(repo)
	selector := app.NewSelector(gen)
	composer := app.NewComposer(gen, float32(cfg.GenTemperature), int32(cfg.GenMaxTokens))
	publisher := app.NewPublisher(blob, cfg.FeedKey, domain.ChannelInfo{
		Title:       cfg.ChannelTitle,
		Link:        cfg.ChannelLink,
		Description: cfg.ChannelDescription,
		Language:    cfg.ChannelLanguage,
	})
	return app.NewProcessService(store, selector, article.NewClient(), composer, publisher,
		cfg.CandidateLimit, cfg.RecentPostLimit), nil
}

func feedURLs(cfg config.Config) map[domain.Outlet]string {
	return map[domain.Outlet]string{
		domain.OutletTechCrunch:  cfg.TechCrunchFeedURL,
		domain.OutletArsTechnica: cfg.ArsTechnicaFeedURL,
	}
}
