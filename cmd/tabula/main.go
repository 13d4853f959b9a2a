// Command tabula is the terminal data browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/config"
	"github.com/abelbrown/tabula/internal/controller"
	"github.com/abelbrown/tabula/internal/fetch"
	"github.com/abelbrown/tabula/internal/filter"
	"github.com/abelbrown/tabula/internal/location"
	"github.com/abelbrown/tabula/internal/logging"
	"github.com/abelbrown/tabula/internal/otel"
	"github.com/abelbrown/tabula/internal/store"
	"github.com/abelbrown/tabula/internal/ui"
)

const version = "0.1.0"

func main() {
	catFlag := flag.String("category", "", "Start category: users or products")
	queryFlag := flag.String("q", "", "Start filter location, e.g. 'search=sam&status=active' (overrides the stored one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := config.Dir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(dataDir, version); err != nil {
		log.Printf("Warning: diagnostic log disabled: %v", err)
	}
	defer logging.Close()

	if cfg.Trace {
		otel.SetTraceEnabled(true)
	}

	eventsFile, err := os.OpenFile(config.EventsPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	defer eventsFile.Close()

	events := otel.NewLogger(eventsFile)
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	if !otel.TraceEnabled() {
		events.SetDiskLevel(otel.LevelInfo)
	}
	defer events.Close()
	events.Info(otel.KindStartup, "main", "tabula "+version)

	// Continue without persistence if the store cannot be opened.
	st, err := store.Open(config.DBPath())
	if err != nil {
		logging.Error("open store", "err", err)
		events.Error(otel.KindStoreError, "main", err)
		st = nil
	} else {
		defer st.Close()
	}

	cat := cfg.Category()
	if *catFlag != "" {
		c, err := category.Parse(*catFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		cat = c
	}

	spec := startFilter(*queryFlag, st)
	logging.Info("starting", "category", cat, "location", location.Encode(spec), "base_url", cfg.Source.BaseURL)

	opts := cfg.FetchOptions()
	opts.Logger = events
	fetcher := fetch.NewFetcher(opts)

	ctrl := controller.New(controller.Options{
		Category:  cat,
		Filter:    spec,
		PageSizes: cfg.UI.PageSizes,
		PageSize:  cfg.UI.DefaultPageSize,
		Logger:    events,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ui.NewAppWithConfig(ui.AppConfig{
		Controller: ctrl,
		Fetch: func(req controller.FetchRequest) tea.Cmd {
			return func() tea.Msg {
				recs, err := fetcher.Fetch(ctx, req.Category)
				if err != nil {
					logging.Warn("fetch failed", "category", req.Category, "token", req.Token, "err", err)
				}
				return ui.FetchDone{Result: controller.FetchResult{
					Token:    req.Token,
					Category: req.Category,
					Records:  recs,
					Err:      err,
				}}
			}
		},
		SaveLocation: saveLocation(st),
		Obs:          ui.ObsConfig{Logger: events, Ring: ring},
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		events.Error(otel.KindError, "main", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
	}

	cancel()
	events.Info(otel.KindShutdown, "main", "")
}

// saveLocation returns the UI's save command factory. The sequence is
// reserved when the command is built, inside Update, so writes finishing
// out of order still leave the newest filter stored.
func saveLocation(st *store.Store) func(string) tea.Cmd {
	if st == nil {
		return nil
	}
	w := st.Writer(store.MainView)
	return func(q string) tea.Cmd {
		seq := w.Reserve()
		return func() tea.Msg {
			written, err := w.Write(seq, q)
			if err != nil {
				logging.Error("save location", "query", q, "err", err)
			}
			return ui.LocationSaved{Query: q, Superseded: err == nil && !written, Err: err}
		}
	}
}

// startFilter picks the initial filter: the -q flag wins, then the stored
// location, then the default.
func startFilter(query string, st *store.Store) filter.Spec {
	if query != "" {
		return location.Decode(query)
	}
	if st == nil {
		return filter.DefaultSpec()
	}
	q, ok, err := st.Location(store.MainView)
	if err != nil {
		logging.Warn("read stored location", "err", err)
		return filter.DefaultSpec()
	}
	if !ok {
		return filter.DefaultSpec()
	}
	return location.Decode(q)
}
