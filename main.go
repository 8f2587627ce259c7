package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"todocal/pkg/auth"
	"todocal/pkg/config"
	"todocal/pkg/drive"
	"todocal/pkg/google"
	"todocal/pkg/markdown"
	"todocal/pkg/scheduler"
	"todocal/pkg/sync"
)

func main() {
	// 1. Parse Flags
	calendarName := flag.String("calendar", "", "Destination calendar name (overrides config)")
	setCalendar := flag.String("set-calendar", "", "Set the default destination calendar name")
	chooseCalendar := flag.Bool("choose-calendar", false, "Pick the destination calendar interactively")
	doAuth := flag.Bool("auth", false, "Authenticate with Google and store a fresh token")
	once := flag.Bool("once", false, "Run a single sync pass and exit")
	initMonth := flag.Bool("init-month", false, "Create this month's todo document if it does not exist")
	flag.Parse()

	// 2. Handle Set Calendar
	if *setCalendar != "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg.Calendar = *setCalendar
		if err := config.Save(cfg); err != nil {
			log.Fatalf("Error saving config: %v", err)
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)
		return
	}

	ctx := context.Background()

	// 3. Handle Authentication
	if *doAuth {
		base, err := auth.GetXdgHome()
		if err != nil {
			log.Fatalf("Could not find configuration directory: %v", err)
		}
		tokenFile := filepath.Join(base, auth.TokenFile)
		if _, err := os.Stat(tokenFile); err == nil {
			log.Printf("Removing existing token file at %s", tokenFile)
			if err := os.Remove(tokenFile); err != nil {
				log.Fatalf("Could not delete token file %s: %v. Please delete it manually", tokenFile, err)
			}
		}
		if _, err := auth.NewServices(ctx); err != nil {
			log.Fatalf("Authentication failed: %v", err)
		}
		log.Printf("Authentication successful! Token saved to %s", tokenFile)
		return
	}

	// 4. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *calendarName != "" {
		cfg.Calendar = *calendarName
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Error resolving timezone: %v", err)
	}

	// 5. Build Authenticated Services
	services, err := auth.NewServices(ctx)
	if err != nil {
		log.Fatalf("Error creating Google services: %v. Run with -auth first", err)
	}

	// 6. Handle Interactive Calendar Selection
	if *chooseCalendar {
		name, err := google.ChooseCalendar(services.Calendar, os.Stdin, os.Stdout, 3)
		if err != nil {
			log.Fatalf("Calendar selection failed: %v", err)
		}
		cfg.Calendar = name
		if err := config.Save(cfg); err != nil {
			log.Fatalf("Error saving config: %v", err)
		}
		fmt.Printf("Default calendar set to: %s\n", name)
		return
	}

	// A pass without a destination calendar is refused outright.
	if cfg.Calendar == "" {
		log.Fatalf("No destination calendar configured. Use -set-calendar or -choose-calendar first")
	}

	store := drive.NewStore(services.Drive)
	month := time.Now().In(loc).Month()
	docPath := drive.TodoPath(cfg.TodoFolder, cfg.Year, int(month))

	// 7. Handle Month Document Creation
	if *initMonth {
		exists, err := store.Exists(docPath)
		if err != nil {
			log.Fatalf("Error checking for %s: %v", docPath, err)
		}
		if exists {
			fmt.Printf("Document %s already exists\n", docPath)
			return
		}
		if err := store.WriteText(docPath, markdown.MonthTemplate(cfg.Year, month)); err != nil {
			log.Fatalf("Error creating %s: %v", docPath, err)
		}
		fmt.Printf("Created %s\n", docPath)
		return
	}

	// 8. Build the Reconciler and the Pass Pipeline
	gClient, err := google.NewClient(services.Calendar, cfg.Calendar)
	if err != nil {
		log.Fatalf("Error resolving calendar: %v", err)
	}
	reconciler := sync.New(gClient, loc)

	pass := func() error {
		text, err := store.ReadText(docPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", docPath, err)
		}
		index, err := markdown.Parse(strings.NewReader(text), cfg.Year)
		if err != nil {
			return err
		}
		stats, err := reconciler.Run(index)
		if err != nil {
			return err
		}
		log.Printf("Sync pass done: %d open tasks, %d created, %d deleted, %d already present",
			index.OpenCount(), stats.Created, stats.Deleted, stats.Skipped)
		return nil
	}

	// 9. Run Once or as a Daemon
	if *once {
		if err := pass(); err != nil {
			log.Fatalf("Sync pass failed: %v", err)
		}
		return
	}

	sched, err := scheduler.New(loc, cfg.Sync, pass)
	if err != nil {
		log.Fatalf("Error building scheduler: %v", err)
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Syncing %s to calendar %q every %q", docPath, cfg.Calendar, cfg.Sync)
	if err := pass(); err != nil {
		log.Printf("Initial sync pass failed: %v", err)
	}
	sched.Start(runCtx)
}
