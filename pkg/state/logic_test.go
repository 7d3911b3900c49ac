// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"fmt"
	"testing"
	"time"
)

func newTestState() *GameState {
	return NewGameState("user-1", "alien_user-1_1", AlienAttributes{}, nil, DefaultMissionTarget,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
}

func TestAlienLevelFor(t *testing.T) {
	tests := []struct {
		points   int
		expected int
	}{
		{0, 1},
		{199, 1},
		{200, 2},
		{399, 2},
		{400, 3},
		{1000, 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d points", tt.points), func(t *testing.T) {
			if got := AlienLevelFor(tt.points); got != tt.expected {
				t.Errorf("AlienLevelFor(%d) = %d, expected %d", tt.points, got, tt.expected)
			}
		})
	}
}

func TestNewGameState_Defaults(t *testing.T) {
	achievements := []Achievement{{ID: 1, Title: "FIRST_SCAN"}}
	state := NewGameState("user-1", "seed", AlienAttributes{BodyShape: "circle"}, achievements, 0, time.Now())

	if state.AlienLevel != 1 {
		t.Errorf("AlienLevel = %d, expected 1", state.AlienLevel)
	}
	if state.HungerLevel != DefaultHungerLevel {
		t.Errorf("HungerLevel = %d, expected %d", state.HungerLevel, DefaultHungerLevel)
	}
	if state.DailyMissionTarget != DefaultMissionTarget {
		t.Errorf("DailyMissionTarget = %d, expected %d", state.DailyMissionTarget, DefaultMissionTarget)
	}
	if state.Accuracy != 100 {
		t.Errorf("Accuracy = %d, expected 100", state.Accuracy)
	}
	if state.LastScanTimestamp != nil || state.LastScanLocation != nil {
		t.Error("new state should have no last scan timestamp or location")
	}
	if state.RecentActivity == nil || len(state.RecentActivity) != 0 {
		t.Errorf("RecentActivity should be an empty list, got %v", state.RecentActivity)
	}

	// Seeded achievements must not alias the catalog slice
	achievements[0].Unlocked = true
	if state.Achievements[0].Unlocked {
		t.Error("achievements should be copied from the catalog")
	}
}

func TestResetDailyWindow(t *testing.T) {
	tests := []struct {
		name        string
		lastDate    string
		scansToday  int
		today       string
		expectReset bool
		expectScans int
	}{
		{"never scanned", "", 0, "2025-03-10", true, 0},
		{"same day keeps counter", "2025-03-10", 7, "2025-03-10", false, 7},
		{"new day resets counter", "2025-03-09", 100, "2025-03-10", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			state.LastScanDate = tt.lastDate
			state.ScansToday = tt.scansToday

			if got := ResetDailyWindow(state, tt.today); got != tt.expectReset {
				t.Errorf("ResetDailyWindow() = %v, expected %v", got, tt.expectReset)
			}
			if state.ScansToday != tt.expectScans {
				t.Errorf("ScansToday = %d, expected %d", state.ScansToday, tt.expectScans)
			}
			if state.LastScanDate != tt.today {
				t.Errorf("LastScanDate = %q, expected %q", state.LastScanDate, tt.today)
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	// 23:30 UTC is already the next day in UTC+2
	ts := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	if got := DayOf(ts, nil); got != "2025-03-10" {
		t.Errorf("DayOf(nil) = %s, expected 2025-03-10", got)
	}
	if got := DayOf(ts, plusTwo); got != "2025-03-11" {
		t.Errorf("DayOf(UTC+2) = %s, expected 2025-03-11", got)
	}
}

func TestApplyScan_Effects(t *testing.T) {
	state := newTestState()
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	loc := &Location{Latitude: 52.52, Longitude: 13.405}

	ApplyScan(state, ScanInput{WasteType: "plastic", Points: 10, Location: loc}, now)

	if state.EcoPoints != 10 {
		t.Errorf("EcoPoints = %d, expected 10", state.EcoPoints)
	}
	if state.TotalScans != 1 || state.ScansToday != 1 {
		t.Errorf("TotalScans = %d, ScansToday = %d, expected 1 and 1", state.TotalScans, state.ScansToday)
	}
	if state.HungerLevel != 35 {
		t.Errorf("HungerLevel = %d, expected 35", state.HungerLevel)
	}
	if state.LastScanTimestamp == nil || !state.LastScanTimestamp.Equal(now) {
		t.Errorf("LastScanTimestamp = %v, expected %v", state.LastScanTimestamp, now)
	}
	if state.LastScanLocation == nil || *state.LastScanLocation != *loc {
		t.Errorf("LastScanLocation = %v, expected %v", state.LastScanLocation, loc)
	}
	if state.LastScanLocation == loc {
		t.Error("LastScanLocation should not alias the input location")
	}
	if state.DailyMissionProgress != 1 {
		t.Errorf("DailyMissionProgress = %d, expected 1", state.DailyMissionProgress)
	}
	if len(state.RecentActivity) != 1 {
		t.Fatalf("len(RecentActivity) = %d, expected 1", len(state.RecentActivity))
	}
	activity := state.RecentActivity[0]
	if activity.Type != ActivityTypeScan || activity.Text != "Scanned plastic" || activity.Points != 10 {
		t.Errorf("unexpected activity: %+v", activity)
	}
	if activity.Icon != DefaultScanIcon {
		t.Errorf("activity icon = %q, expected %q", activity.Icon, DefaultScanIcon)
	}
	if activity.ID == "" {
		t.Error("activity should have an ID")
	}
}

func TestApplyScan_KeepsLocationWhenNotSupplied(t *testing.T) {
	state := newTestState()
	prev := &Location{Latitude: 1, Longitude: 2}
	state.LastScanLocation = prev

	ApplyScan(state, ScanInput{WasteType: "paper", Points: 8}, time.Now())

	if state.LastScanLocation == nil || *state.LastScanLocation != *prev {
		t.Errorf("LastScanLocation = %v, expected unchanged %v", state.LastScanLocation, prev)
	}
}

func TestApplyScan_HungerFloor(t *testing.T) {
	state := newTestState()
	state.HungerLevel = 50
	now := time.Now()

	ApplyScan(state, ScanInput{WasteType: "glass", Points: 15}, now)
	if state.HungerLevel != 35 {
		t.Fatalf("HungerLevel = %d, expected 35", state.HungerLevel)
	}

	for i := 0; i < 9; i++ {
		ApplyScan(state, ScanInput{WasteType: "glass", Points: 15}, now)
		if state.HungerLevel < 0 {
			t.Fatalf("HungerLevel went negative: %d", state.HungerLevel)
		}
	}

	if state.HungerLevel != 0 {
		t.Errorf("HungerLevel = %d, expected 0", state.HungerLevel)
	}
}

func TestApplyScan_LevelUp(t *testing.T) {
	state := newTestState()
	state.EcoPoints = 190
	state.AlienLevel = AlienLevelFor(190)
	// Keep the mission bonus out of the way
	state.DailyMissionCompleted = true

	if state.AlienLevel != 1 {
		t.Fatalf("AlienLevel = %d, expected 1", state.AlienLevel)
	}

	ApplyScan(state, ScanInput{WasteType: "plastic", Points: 10}, time.Now())

	if state.EcoPoints != 200 {
		t.Errorf("EcoPoints = %d, expected 200", state.EcoPoints)
	}
	if state.AlienLevel != 2 {
		t.Errorf("AlienLevel = %d, expected 2", state.AlienLevel)
	}
}

func TestApplyScan_MissionBonusOnce(t *testing.T) {
	state := newTestState()
	now := time.Now()

	for i := 0; i < state.DailyMissionTarget-1; i++ {
		ApplyScan(state, ScanInput{WasteType: "metal", Points: 12}, now)
	}
	if state.DailyMissionCompleted {
		t.Fatal("mission should not be completed before reaching the target")
	}
	pointsBefore := state.EcoPoints

	ApplyScan(state, ScanInput{WasteType: "metal", Points: 12}, now)

	if !state.DailyMissionCompleted {
		t.Fatal("mission should be completed after reaching the target")
	}
	if state.EcoPoints != pointsBefore+12+MissionBonusPoints {
		t.Errorf("EcoPoints = %d, expected %d", state.EcoPoints, pointsBefore+12+MissionBonusPoints)
	}
	if state.DailyMissionProgress != state.DailyMissionTarget {
		t.Errorf("DailyMissionProgress = %d, expected %d", state.DailyMissionProgress, state.DailyMissionTarget)
	}

	pointsAfter := state.EcoPoints
	ApplyScan(state, ScanInput{WasteType: "metal", Points: 12}, now)

	if state.EcoPoints != pointsAfter+12 {
		t.Errorf("EcoPoints = %d, expected %d (no second bonus)", state.EcoPoints, pointsAfter+12)
	}
	if state.DailyMissionProgress != state.DailyMissionTarget {
		t.Errorf("DailyMissionProgress = %d, expected to stay at %d", state.DailyMissionProgress, state.DailyMissionTarget)
	}
	if state.AlienLevel != AlienLevelFor(state.EcoPoints) {
		t.Errorf("AlienLevel = %d, expected %d", state.AlienLevel, AlienLevelFor(state.EcoPoints))
	}
}

func TestApplyScan_RecentActivityCap(t *testing.T) {
	state := newTestState()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		ApplyScan(state, ScanInput{WasteType: fmt.Sprintf("item-%d", i), Points: 1}, base.Add(time.Duration(i)*time.Minute))
	}

	if len(state.RecentActivity) != MaxRecentActivity {
		t.Fatalf("len(RecentActivity) = %d, expected %d", len(state.RecentActivity), MaxRecentActivity)
	}

	// Newest first: item-14 down to item-5
	for i, activity := range state.RecentActivity {
		expected := fmt.Sprintf("Scanned item-%d", 14-i)
		if activity.Text != expected {
			t.Errorf("RecentActivity[%d].Text = %q, expected %q", i, activity.Text, expected)
		}
	}
}

func TestCompleteMission(t *testing.T) {
	tests := []struct {
		name          string
		completed     bool
		points        int
		expectGranted bool
		expectPoints  int
	}{
		{"first completion grants bonus", false, 180, true, 205},
		{"already completed grants nothing", true, 180, false, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			state.DailyMissionCompleted = tt.completed
			state.EcoPoints = tt.points
			state.AlienLevel = AlienLevelFor(tt.points)

			if got := CompleteMission(state, time.Now()); got != tt.expectGranted {
				t.Errorf("CompleteMission() = %v, expected %v", got, tt.expectGranted)
			}
			if !state.DailyMissionCompleted {
				t.Error("DailyMissionCompleted should be true")
			}
			if state.EcoPoints != tt.expectPoints {
				t.Errorf("EcoPoints = %d, expected %d", state.EcoPoints, tt.expectPoints)
			}
			if state.AlienLevel != AlienLevelFor(tt.expectPoints) {
				t.Errorf("AlienLevel = %d, expected %d", state.AlienLevel, AlienLevelFor(tt.expectPoints))
			}
		})
	}
}

func TestApplyHungerTick(t *testing.T) {
	tests := []struct {
		name          string
		hunger        int
		amount        int
		expectChanged bool
		expectHunger  int
	}{
		{"increases hunger", 50, 2, true, 52},
		{"caps at max", 99, 2, true, 100},
		{"already full", 100, 2, false, 100},
		{"zero amount", 40, 0, false, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			state.HungerLevel = tt.hunger

			if got := ApplyHungerTick(state, tt.amount); got != tt.expectChanged {
				t.Errorf("ApplyHungerTick() = %v, expected %v", got, tt.expectChanged)
			}
			if state.HungerLevel != tt.expectHunger {
				t.Errorf("HungerLevel = %d, expected %d", state.HungerLevel, tt.expectHunger)
			}
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	state := newTestState()
	ts := time.Now()
	state.LastScanTimestamp = &ts
	state.LastScanLocation = &Location{Latitude: 1, Longitude: 1}
	state.AlienAttributes.Accessories = []string{"hat"}
	state.Achievements = []Achievement{{ID: 1}}
	PushActivity(state, NewMissionActivity(ts))

	clone := state.Clone()
	clone.LastScanLocation.Latitude = 50
	*clone.LastScanTimestamp = ts.Add(time.Hour)
	clone.AlienAttributes.Accessories[0] = "crown"
	clone.Achievements[0].Unlocked = true
	clone.RecentActivity[0].Points = 999

	if state.LastScanLocation.Latitude != 1 {
		t.Error("clone shares LastScanLocation")
	}
	if !state.LastScanTimestamp.Equal(ts) {
		t.Error("clone shares LastScanTimestamp")
	}
	if state.AlienAttributes.Accessories[0] != "hat" {
		t.Error("clone shares Accessories")
	}
	if state.Achievements[0].Unlocked {
		t.Error("clone shares Achievements")
	}
	if state.RecentActivity[0].Points != MissionBonusPoints {
		t.Error("clone shares RecentActivity")
	}
}
