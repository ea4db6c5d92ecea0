package widget

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/idilsaglam/dash/internal/config"
)

// Snapshot is the state of every widget after one Board refresh.
type Snapshot struct {
	Rates    Cell[Rates]
	Location Cell[Location]
}

// Board groups the dashboard widgets.
type Board struct {
	Rates    *Widget[Rates]
	Location *Widget[Location]
}

// NewBoard wires the widgets from configuration.
func NewBoard(cfg config.Widgets, client *http.Client, log *slog.Logger) *Board {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout.Duration}
	}

	rates := RatesFetcher{Client: client, BaseURL: cfg.Rates.URL, Date: cfg.Rates.Date}
	fallback := FallbackRates(cfg.Rates.FallbackUSD, cfg.Rates.FallbackEUR)
	loc := LocationFetcher{
		Client:    client,
		LookupURL: cfg.Location.LookupURL,
		Lat:       cfg.Location.Latitude,
		Lon:       cfg.Location.Longitude,
	}

	return &Board{
		Rates: New("rates", rates.Fetch, Options[Rates]{
			Timeout:  cfg.Timeout.Duration,
			MaxStale: cfg.MaxStale.Duration,
			Fallback: &fallback,
			Logger:   log,
		}),
		Location: New("location", loc.Fetch, Options[Location]{
			Timeout:  cfg.Timeout.Duration,
			MaxStale: cfg.MaxStale.Duration,
			Logger:   log,
		}),
	}
}

// Refresh refreshes every widget concurrently. Widgets do not wait on each
// other's failures.
func (b *Board) Refresh(ctx context.Context) Snapshot {
	var (
		snap Snapshot
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap.Rates = b.Rates.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Location = b.Location.Refresh(ctx)
	}()
	wg.Wait()
	return snap
}
