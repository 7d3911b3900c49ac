// Package game implements the player-facing use cases on top of the rate gate
// and the state store.
package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/alien"
	"github.com/alienwaste/alienwaste-backend/pkg/catalog"
	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/gate"
	"github.com/alienwaste/alienwaste-backend/pkg/metrics"
	"github.com/alienwaste/alienwaste-backend/pkg/service"
	"github.com/alienwaste/alienwaste-backend/pkg/state"
	"github.com/alienwaste/alienwaste-backend/pkg/telegram"

	"github.com/sirupsen/logrus"
)

// DefaultLeaderboardSize is used when no positive limit is requested
const DefaultLeaderboardSize = 10

var (
	ErrUnauthorized   = errors.New("invalid authentication data")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = service.ErrNotFound

	// errUnchanged aborts a mutation that had nothing to do
	errUnchanged = errors.New("state unchanged")
)

// ScanRequest is a scan reported by the client.
// A location is used only when both coordinates are present.
type ScanRequest struct {
	UserID    string
	WasteType string
	Points    int
	Latitude  *float64
	Longitude *float64
}

func (r ScanRequest) location() *state.Location {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &state.Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// ScanResult is the outcome of a scan. Rejections are results, not errors.
type ScanResult struct {
	Accepted       bool
	State          *state.GameState
	Rejection      *gate.Rejection
	ScansRemaining int
	Message        string
}

type AuthResult struct {
	User    telegram.User
	State   *state.GameState
	Created bool
}

// Service wires the gate, the store and the catalog together
type Service struct {
	store    service.StateStore
	gate     *gate.Gate
	clock    clock.Clock
	catalog  *catalog.Catalog
	botToken string
}

type Config struct {
	BotToken string
}

func NewService(
	store service.StateStore,
	g *gate.Gate,
	clk clock.Clock,
	cat *catalog.Catalog,
	cfg Config,
) *Service {
	return &Service{
		store:    store,
		gate:     g,
		clock:    clk,
		catalog:  cat,
		botToken: cfg.BotToken,
	}
}

// NewStateFactory returns the seeding function for first-contact users
func NewStateFactory(cat *catalog.Catalog) service.StateFactory {
	return func(userID string, now time.Time) *state.GameState {
		seed := alien.Seed(userID)
		return state.NewGameState(userID, seed, alien.Attributes(seed), cat.InitialAchievements(), cat.MissionTarget, now)
	}
}

// Authenticate verifies Telegram Web App init data and returns the player's state,
// creating it on first contact.
func (s *Service) Authenticate(ctx context.Context, initData string) (*AuthResult, error) {
	if !telegram.VerifyInitData(initData, s.botToken) {
		return nil, ErrUnauthorized
	}

	user, err := telegram.ParseUser(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	gs, created, err := s.getOrCreate(ctx, user.IDString())
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: *user, State: gs, Created: created}, nil
}

// EnsurePlayer returns the state of userID, creating it when absent
func (s *Service) EnsurePlayer(ctx context.Context, userID string) (*state.GameState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	gs, _, err := s.getOrCreate(ctx, userID)
	return gs, err
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (*state.GameState, bool, error) {
	gs, created, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}
	if created {
		metrics.Players.Inc()
	}
	return gs, created, nil
}

// Scan runs the rate gate and, when it passes, applies the scan. Both happen in
// one atomic store update. A rejected scan persists only the daily window reset.
func (s *Service) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if req.Points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", ErrInvalidRequest)
	}

	now := s.clock.Now()
	loc := req.location()

	var decision gate.Decision
	var missionCompleted bool

	gs, err := s.store.Apply(ctx, req.UserID, func(gs *state.GameState) error {
		decision = s.gate.Evaluate(gs, now, loc)
		missionCompleted = false
		if !decision.Accepted {
			return nil
		}

		wasCompleted := gs.DailyMissionCompleted
		state.ApplyScan(gs, state.ScanInput{
			WasteType: req.WasteType,
			Points:    req.Points,
			Location:  loc,
		}, now)
		missionCompleted = !wasCompleted && gs.DailyMissionCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Accepted:       decision.Accepted,
		State:          gs,
		Rejection:      decision.Rejection,
		ScansRemaining: s.gate.ScansRemaining(gs),
	}

	if !decision.Accepted {
		metrics.ScansTotal.WithLabelValues(metrics.ResultRejected, string(decision.Rejection.Code)).Inc()
		result.Message = decision.Rejection.Message
		return result, nil
	}

	metrics.ScansTotal.WithLabelValues(metrics.ResultAccepted, "").Inc()
	if missionCompleted {
		metrics.MissionsCompletedTotal.WithLabelValues(metrics.TriggerScan).Inc()
	}
	result.Message = fmt.Sprintf("Successfully scanned %s! +%d points", req.WasteType, req.Points)

	logrus.Infof("user %s scanned %s for %d points (%d scans left today)",
		req.UserID, req.WasteType, req.Points, result.ScansRemaining)
	return result, nil
}

// CompleteMission completes the daily mission. Repeated calls are no-ops that
// return the current state.
func (s *Service) CompleteMission(ctx context.Context, userID string) (*state.GameState, error) {
	now := s.clock.Now()
	var granted bool

	gs, err := s.store.Apply(ctx, userID, func(gs *state.GameState) error {
		granted = state.CompleteMission(gs, now)
		if !granted {
			return errUnchanged
		}
		state.PushActivity(gs, state.NewMissionActivity(now))
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return s.store.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	metrics.MissionsCompletedTotal.WithLabelValues(metrics.TriggerManual).Inc()
	return gs, nil
}

// RegenerateAlien gives the player a new alien look
func (s *Service) RegenerateAlien(ctx context.Context, userID string) (*state.GameState, error) {
	now := s.clock.Now()

	return s.store.Apply(ctx, userID, func(gs *state.GameState) error {
		seed := alien.RegeneratedSeed(userID, now)
		gs.AlienSeed = seed
		gs.AlienAttributes = alien.Attributes(seed)
		logrus.Infof("regenerated alien for user %s", userID)
		return nil
	})
}

// GetState returns the stored state of userID
func (s *Service) GetState(ctx context.Context, userID string) (*state.GameState, error) {
	return s.store.Get(ctx, userID)
}

// Leaderboard ranks players by eco points, ties broken by user id
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]state.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	states, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].EcoPoints != states[j].EcoPoints {
			return states[i].EcoPoints > states[j].EcoPoints
		}
		return states[i].UserID < states[j].UserID
	})

	if len(states) > limit {
		states = states[:limit]
	}

	entries := make([]state.LeaderboardEntry, 0, len(states))
	for _, gs := range states {
		entries = append(entries, state.LeaderboardEntry{
			UserID:     gs.UserID,
			EcoPoints:  gs.EcoPoints,
			AlienLevel: gs.AlienLevel,
			TotalScans: gs.TotalScans,
		})
	}
	return entries, nil
}

// WasteTypes lists the waste types offered by the catalog
func (s *Service) WasteTypes() []catalog.WasteType {
	return s.catalog.WasteTypes
}

// TickHunger raises every player's hunger by amount, capped at the maximum.
// Returns how many players changed.
func (s *Service) TickHunger(ctx context.Context, amount int) (int, error) {
	states, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list states: %w", err)
	}
	metrics.Players.Set(float64(len(states)))

	changed := 0
	var errs []error
	for _, listed := range states {
		if listed.HungerLevel >= state.MaxHungerLevel {
			continue
		}

		_, err := s.store.Apply(ctx, listed.UserID, func(gs *state.GameState) error {
			if !state.ApplyHungerTick(gs, amount) {
				return errUnchanged
			}
			return nil
		})
		switch {
		case err == nil:
			changed++
		case errors.Is(err, errUnchanged), errors.Is(err, service.ErrNotFound):
		default:
			logrus.Warnf("hunger tick failed for user %s: %v", listed.UserID, err)
			errs = append(errs, err)
		}
	}

	metrics.HungerTicksTotal.Add(float64(changed))
	return changed, errors.Join(errs...)
}
