// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"
)

const (
	// PointsPerLevel is the number of eco points needed per alien level
	PointsPerLevel = 200
	// DefaultHungerLevel is the hunger level of a freshly created alien
	DefaultHungerLevel = 50
	// MaxHungerLevel is the upper bound of the hunger level
	MaxHungerLevel = 100
	// HungerDropPerScan is how much hunger a successful scan removes
	HungerDropPerScan = 15
	// DefaultMissionTarget is the number of scans needed for the daily mission
	DefaultMissionTarget = 5
	// MissionBonusPoints is granted once when the daily mission completes
	MissionBonusPoints = 25
	// MaxRecentActivity caps the recent activity feed
	MaxRecentActivity = 10
	// DateLayout is the calendar-day marker format stored in LastScanDate
	DateLayout = "2006-01-02"
)

// Activity types
const (
	ActivityTypeScan    = "scan"
	ActivityTypeMission = "mission"
)

// GameState represents the complete state for a player
type GameState struct {
	UserID      string `json:"userId"`
	AlienLevel  int    `json:"alienLevel"`
	EcoPoints   int    `json:"ecoPoints"`
	HungerLevel int    `json:"hungerLevel"`
	TotalScans  int    `json:"totalScans"`
	Accuracy    int    `json:"accuracy"`
	StreakDays  int    `json:"streakDays"`

	AlienSeed       string          `json:"alienSeed"`
	AlienAttributes AlienAttributes `json:"alienAttributes"`

	DailyMissionProgress  int  `json:"dailyMissionProgress"`
	DailyMissionTarget    int  `json:"dailyMissionTarget"`
	DailyMissionCompleted bool `json:"dailyMissionCompleted"`

	LastScanLocation  *Location  `json:"lastScanLocation"`
	LastScanTimestamp *time.Time `json:"lastScanTimestamp"`
	ScansToday        int        `json:"scansToday"`
	LastScanDate      string     `json:"lastScanDate"`

	Achievements   []Achievement `json:"achievements"`
	RecentActivity []Activity    `json:"recentActivity"`
	LastActive     time.Time     `json:"lastActive"`
}

// Location is a latitude/longitude pair in degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AlienAttributes describes how the alien companion looks.
// The values are produced by the alien generator and never inspected here.
type AlienAttributes struct {
	BodyShape      string   `json:"bodyShape"`
	BodySize       int      `json:"bodySize"`
	PrimaryColor   string   `json:"primaryColor"`
	SecondaryColor string   `json:"secondaryColor"`
	GlowColor      string   `json:"glowColor"`
	EyeType        string   `json:"eyeType"`
	EyeColor       string   `json:"eyeColor"`
	EyeCount       int      `json:"eyeCount"`
	MouthType      string   `json:"mouthType"`
	MouthColor     string   `json:"mouthColor"`
	Accessories    []string `json:"accessories"`
	Pattern        string   `json:"pattern"`
	AntennaType    string   `json:"antennaType"`
	SkinTexture    string   `json:"skinTexture"`
}

// Achievement is a cosmetic badge shown in the stats screen
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Icon        string `json:"icon"`
}

// Activity is one entry of the recent activity feed
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Points    int       `json:"points"`
	Icon      string    `json:"icon"`
	Timestamp time.Time `json:"timestamp"`
}

// NewGameState creates the default state for a player seen for the first time
func NewGameState(userID, seed string, attrs AlienAttributes, achievements []Achievement, missionTarget int, now time.Time) *GameState {
	if missionTarget <= 0 {
		missionTarget = DefaultMissionTarget
	}

	seeded := make([]Achievement, len(achievements))
	copy(seeded, achievements)

	return &GameState{
		UserID:               userID,
		AlienLevel:           1,
		EcoPoints:            0,
		HungerLevel:          DefaultHungerLevel,
		TotalScans:           0,
		Accuracy:             100,
		StreakDays:           0,
		AlienSeed:            seed,
		AlienAttributes:      attrs,
		DailyMissionProgress: 0,
		DailyMissionTarget:   missionTarget,
		Achievements:         seeded,
		RecentActivity:       []Activity{},
		LastActive:           now,
	}
}

// Clone returns a deep copy of the state
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	c := *s
	if s.LastScanLocation != nil {
		loc := *s.LastScanLocation
		c.LastScanLocation = &loc
	}
	if s.LastScanTimestamp != nil {
		ts := *s.LastScanTimestamp
		c.LastScanTimestamp = &ts
	}
	if s.AlienAttributes.Accessories != nil {
		c.AlienAttributes.Accessories = append([]string{}, s.AlienAttributes.Accessories...)
	}
	if s.Achievements != nil {
		c.Achievements = append([]Achievement{}, s.Achievements...)
	}
	if s.RecentActivity != nil {
		c.RecentActivity = append([]Activity{}, s.RecentActivity...)
	}

	return &c
}

// LeaderboardEntry is the public ranking view of a player
type LeaderboardEntry struct {
	UserID     string `json:"userId"`
	EcoPoints  int    `json:"ecoPoints"`
	AlienLevel int    `json:"alienLevel"`
	TotalScans int    `json:"totalScans"`
}
