// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultScanIcon is used for scan activities when the waste type has no icon
const DefaultScanIcon = "♻️"

// MissionIcon is the icon of mission completion activities
const MissionIcon = "🎯"

// ScanInput carries the caller-supplied data of an accepted scan
type ScanInput struct {
	WasteType string
	Points    int
	Location  *Location
	Icon      string
}

// AlienLevelFor derives the alien level from eco points
func AlienLevelFor(points int) int {
	return points/PointsPerLevel + 1
}

// DayOf returns the calendar-day marker of t in loc.
// A nil loc keeps t's own location.
func DayOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ResetDailyWindow resets the daily scan counter if today differs from the last scan date
// Returns true if a reset occurred, false otherwise
func ResetDailyWindow(state *GameState, today string) bool {
	if state.LastScanDate == today {
		return false
	}

	logrus.Debugf("daily window reset for user %s: %q -> %q (scansToday was %d)",
		state.UserID, state.LastScanDate, today, state.ScansToday)

	state.ScansToday = 0
	state.LastScanDate = today
	return true
}

// ApplyScan applies the effects of an accepted scan.
// The caller is responsible for having run the anti-cheat gate first.
func ApplyScan(state *GameState, in ScanInput, now time.Time) {
	state.EcoPoints += in.Points
	state.TotalScans++
	state.ScansToday++

	state.HungerLevel -= HungerDropPerScan
	if state.HungerLevel < 0 {
		state.HungerLevel = 0
	}

	state.AlienLevel = AlienLevelFor(state.EcoPoints)

	ts := now
	state.LastScanTimestamp = &ts

	// Location is overwritten whenever supplied so the next scan has a baseline
	if in.Location != nil {
		loc := *in.Location
		state.LastScanLocation = &loc
	}

	if !state.DailyMissionCompleted {
		state.DailyMissionProgress++
		if state.DailyMissionProgress > state.DailyMissionTarget {
			state.DailyMissionProgress = state.DailyMissionTarget
		}
		if state.DailyMissionProgress >= state.DailyMissionTarget {
			CompleteMission(state, now)
		}
	}

	icon := in.Icon
	if icon == "" {
		icon = DefaultScanIcon
	}
	PushActivity(state, Activity{
		ID:        uuid.NewString(),
		Type:      ActivityTypeScan,
		Text:      fmt.Sprintf("Scanned %s", in.WasteType),
		Points:    in.Points,
		Icon:      icon,
		Timestamp: now,
	})

	state.LastActive = now
}

// CompleteMission marks the daily mission complete and grants the bonus.
// It is idempotent: the bonus is granted only on the first completion.
// Returns true if the bonus was granted by this call.
func CompleteMission(state *GameState, now time.Time) bool {
	if state.DailyMissionCompleted {
		logrus.Debugf("mission already completed for user %s, no bonus granted", state.UserID)
		return false
	}

	state.DailyMissionCompleted = true
	state.EcoPoints += MissionBonusPoints
	state.AlienLevel = AlienLevelFor(state.EcoPoints)
	state.LastActive = now

	logrus.Infof("daily mission completed for user %s: +%d points", state.UserID, MissionBonusPoints)
	return true
}

// NewMissionActivity builds the activity entry recorded for a mission completion
func NewMissionActivity(now time.Time) Activity {
	return Activity{
		ID:        uuid.NewString(),
		Type:      ActivityTypeMission,
		Text:      "Completed daily mission",
		Points:    MissionBonusPoints,
		Icon:      MissionIcon,
		Timestamp: now,
	}
}

// PushActivity prepends an activity and drops the oldest entries beyond MaxRecentActivity
func PushActivity(state *GameState, activity Activity) {
	feed := make([]Activity, 0, MaxRecentActivity)
	feed = append(feed, activity)
	feed = append(feed, state.RecentActivity...)
	if len(feed) > MaxRecentActivity {
		feed = feed[:MaxRecentActivity]
	}
	state.RecentActivity = feed
}

// ApplyHungerTick increases hunger by amount, capped at MaxHungerLevel.
// Returns true if the hunger level changed.
func ApplyHungerTick(state *GameState, amount int) bool {
	if amount <= 0 || state.HungerLevel >= MaxHungerLevel {
		return false
	}

	state.HungerLevel += amount
	if state.HungerLevel > MaxHungerLevel {
		state.HungerLevel = MaxHungerLevel
	}
	return true
}
