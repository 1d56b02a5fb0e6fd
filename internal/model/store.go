package model

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"flaggingd/pkg/types"
)

// DefaultSafeThreshold is the exceedance probability at which a reach is
// flagged unsafe when no threshold is configured.
const DefaultSafeThreshold = 0.65

// Snapshot is one complete model run over the trailing sample window.
type Snapshot struct {
	Version    string
	ComputedAt time.Time
	Reaches    map[int][]Prediction
}

// Config holds the knobs for a Store. Zero values fall back to defaults.
type Config struct {
	// Coefficient vintage to serve. Defaults to DefaultVersion.
	Version string
	// Exceedance probability at or above which a sample is flagged unsafe.
	SafeThreshold float64
	// Directory scanned for gauge CSV files on every refresh.
	DataDir string
	// Loader reads the gauge history; swapped out in tests.
	Loader func(dir string) ([]types.Sample, error)
	Logger zerolog.Logger
}

// Store computes and serves the latest flagging snapshot. Refresh replaces
// the snapshot atomically; readers are never blocked by a recompute.
type Store struct {
	cfg    Config
	coeffs map[int]Coefficients

	mu        sync.RWMutex
	snap      *Snapshot
	lastErr   string
	refreshes uint64

	start time.Time
}

// New resolves the configured coefficient vintage and returns an empty store.
// Call Refresh to compute the first snapshot.
func New(cfg Config) (*Store, error) {
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.SafeThreshold <= 0 || cfg.SafeThreshold >= 1 {
		cfg.SafeThreshold = DefaultSafeThreshold
	}
	coeffs, err := CoefficientsFor(cfg.Version)
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, coeffs: coeffs, start: time.Now()}, nil
}

// Refresh reloads the gauge history and recomputes the snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	samples, err := s.cfg.Loader(s.cfg.DataDir)
	if err != nil {
		return s.fail(fmt.Errorf("load gauge samples: %w", err))
	}
	if len(samples) == 0 {
		return s.fail(fmt.Errorf("no gauge samples in %s", s.cfg.DataDir))
	}
	snap := &Snapshot{
		Version:    s.cfg.Version,
		ComputedAt: time.Now().UTC(),
		Reaches:    predict(samples, s.coeffs, s.cfg.SafeThreshold),
	}

	s.mu.Lock()
	s.snap = snap
	s.lastErr = ""
	s.refreshes++
	s.mu.Unlock()

	s.cfg.Logger.Info().
		Str("version", snap.Version).
		Int("samples", len(samples)).
		Msg("model snapshot refreshed")
	return nil
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

// Run refreshes the snapshot on a fixed interval until ctx is canceled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.cfg.Logger.Error().Err(err).Msg("model refresh failed")
			}
		}
	}
}

// Predictions returns the trailing hours of the snapshot for the requested
// reaches. A nil or empty reach list means all modeled reaches.
func (s *Store) Predictions(reaches []int, hours int) (types.ModelResponse, error) {
	if len(reaches) == 0 {
		reaches = append([]int(nil), Reaches...)
	}
	for _, r := range reaches {
		if _, ok := s.coeffs[r]; !ok {
			return types.ModelResponse{}, ErrUnknownReach(r)
		}
	}
	if hours <= 0 {
		hours = maxWindow
	}

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return types.ModelResponse{}, ErrSnapshotUnavailable()
	}

	resp := types.ModelResponse{
		Version:      snap.Version,
		TimeReturned: snap.ComputedAt.Format(time.RFC3339),
		Models:       make(map[string]types.ReachSeries, len(reaches)),
	}
	for _, r := range reaches {
		preds := snap.Reaches[r]
		if len(preds) > hours {
			preds = preds[len(preds)-hours:]
		}
		series := types.ReachSeries{
			Time:        make([]string, len(preds)),
			LogOdds:     make([]float64, len(preds)),
			Probability: make([]float64, len(preds)),
			Safe:        make([]bool, len(preds)),
		}
		for i, p := range preds {
			series.Time[i] = p.Time.Format(time.RFC3339)
			series.LogOdds[i] = p.LogOdds
			series.Probability[i] = p.Probability
			series.Safe[i] = p.Safe
		}
		resp.Models[strconv.Itoa(r)] = series
	}
	return resp, nil
}

// Ready reports whether a snapshot has been computed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Status summarizes the store for GET /status.
func (s *Store) Status() types.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.StatusResponse{
		Version:        s.cfg.Version,
		State:          "loading",
		SafeThreshold:  s.cfg.SafeThreshold,
		RefreshesTotal: s.refreshes,
		LastError:      s.lastErr,
		UptimeSeconds:  int64(time.Since(s.start).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	for r := range s.coeffs {
		st.Reaches = append(st.Reaches, r)
	}
	sort.Ints(st.Reaches)
	if s.snap != nil {
		st.State = "ready"
		st.LastRefreshUnix = s.snap.ComputedAt.Unix()
		for _, preds := range s.snap.Reaches {
			st.SampleCount = len(preds)
			break
		}
	} else if s.lastErr != "" {
		st.State = "error"
	}
	return st
}
