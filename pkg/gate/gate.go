// Package gate implements the anti-cheat decision that runs before a scan is accepted.
//
// Checks run in a fixed order and the first rejection wins:
//
//  1. daily window reset (always applied, even when the scan is rejected later)
//  2. daily scan limit
//  3. cooldown since the last accepted scan
//  4. location proximity, only while the cooldown window is still open
//
// The gate never performs I/O and takes the current time as a parameter.
package gate

import (
	"fmt"
	"math"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/sirupsen/logrus"
)

// Code is the machine-readable reason of a rejection
type Code string

const (
	CodeDailyLimitExceeded Code = "DAILY_LIMIT_EXCEEDED"
	CodeCooldownActive     Code = "COOLDOWN_ACTIVE"
	CodeLocationTooClose   Code = "LOCATION_TOO_CLOSE"
)

// Detail keys reported alongside a rejection
const (
	DetailRemainingTime = "remainingTime"
	DetailDistance      = "distance"
)

const (
	cooldownMessage = "Please wait before scanning again or move to a different location"
	limitMessage    = "Daily scan limit reached. Try again tomorrow!"
)

// Rejection describes why a scan was refused
type Rejection struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]int `json:"details,omitempty"`
}

// Decision is the outcome of Evaluate
type Decision struct {
	Accepted  bool
	Rejection *Rejection
}

// Accept returns an accepting decision
func Accept() Decision {
	return Decision{Accepted: true}
}

// Reject returns a rejecting decision
func Reject(r *Rejection) Decision {
	return Decision{Accepted: false, Rejection: r}
}

// check is one step of the gate. It returns nil when the scan may proceed.
type check struct {
	name string
	eval func(gs *state.GameState, now time.Time, loc *state.Location) *Rejection
}

// Gate evaluates scan attempts against a Policy
type Gate struct {
	policy Policy
	checks []check
}

// New creates a gate for the given policy
func New(policy Policy) *Gate {
	g := &Gate{policy: policy}
	g.checks = []check{
		{name: "daily_limit", eval: g.checkDailyLimit},
		{name: "cooldown", eval: g.checkCooldown},
		{name: "location_proximity", eval: g.checkProximity},
	}
	return g
}

// Policy returns the policy the gate enforces
func (g *Gate) Policy() Policy {
	return g.policy
}

// Evaluate decides whether a scan attempted at now from loc (optional) is accepted.
// The daily window of gs is reset as a side effect regardless of the outcome;
// no other field of gs is modified.
func (g *Gate) Evaluate(gs *state.GameState, now time.Time, loc *state.Location) Decision {
	state.ResetDailyWindow(gs, state.DayOf(now, g.policy.Location))

	for _, c := range g.checks {
		if rejection := c.eval(gs, now, loc); rejection != nil {
			logrus.Debugf("scan rejected for user %s by %s: %s", gs.UserID, c.name, rejection.Code)
			return Reject(rejection)
		}
	}

	return Accept()
}

// ScansRemaining returns how many scans are left today for gs
func (g *Gate) ScansRemaining(gs *state.GameState) int {
	remaining := g.policy.MaxScansPerDay - gs.ScansToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (g *Gate) checkDailyLimit(gs *state.GameState, _ time.Time, _ *state.Location) *Rejection {
	if gs.ScansToday < g.policy.MaxScansPerDay {
		return nil
	}

	return &Rejection{
		Code:    CodeDailyLimitExceeded,
		Message: limitMessage,
	}
}

func (g *Gate) checkCooldown(gs *state.GameState, now time.Time, _ *state.Location) *Rejection {
	if !g.inCooldown(gs, now) {
		return nil
	}

	remaining := g.policy.MinScanInterval - now.Sub(*gs.LastScanTimestamp)
	minutes := int(math.Ceil(remaining.Minutes()))

	return &Rejection{
		Code:    CodeCooldownActive,
		Message: fmt.Sprintf("%s. Wait %d more minutes.", cooldownMessage, minutes),
		Details: map[string]int{DetailRemainingTime: minutes},
	}
}

// checkProximity rejects a scan from (almost) the same spot, but only while the
// cooldown window is still open. Being close after the cooldown is fine.
func (g *Gate) checkProximity(gs *state.GameState, now time.Time, loc *state.Location) *Rejection {
	if loc == nil || gs.LastScanLocation == nil {
		return nil
	}

	distance := Distance(*gs.LastScanLocation, *loc)
	if distance >= g.policy.MinDistanceMeters || !g.inCooldown(gs, now) {
		return nil
	}

	return &Rejection{
		Code:    CodeLocationTooClose,
		Message: fmt.Sprintf("%s. Move at least %gm away.", cooldownMessage, g.policy.MinDistanceMeters),
		Details: map[string]int{DetailDistance: int(math.Round(distance))},
	}
}

func (g *Gate) inCooldown(gs *state.GameState, now time.Time) bool {
	if gs.LastScanTimestamp == nil {
		return false
	}
	return now.Sub(*gs.LastScanTimestamp) < g.policy.MinScanInterval
}
