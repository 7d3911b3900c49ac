// Package alien derives the cosmetic look of a player's alien companion.
//
// Everything here is deterministic: the same seed always yields the same alien.
package alien

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/alienwaste/alienwaste-backend/pkg/state"
)

type Palette struct {
	Primary   string
	Secondary string
	Glow      string
}

var palettes = []Palette{
	{Primary: "#8A2BE2", Secondary: "#9932CC", Glow: "#DA70D6"},
	{Primary: "#0080FF", Secondary: "#1E90FF", Glow: "#87CEEB"},
	{Primary: "#00FF41", Secondary: "#32CD32", Glow: "#90EE90"},
	{Primary: "#FF6B00", Secondary: "#FF8C00", Glow: "#FFB347"},
	{Primary: "#FF1493", Secondary: "#FF69B4", Glow: "#FFB6C1"},
}

// HashString is the 31-multiplier string hash over UTF-16 code units,
// computed in wrapping 32-bit arithmetic and returned as its absolute value.
func HashString(s string) uint32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// Seed returns the initial alien seed of a user
func Seed(userID string) string {
	return fmt.Sprintf("alien_%s_%d", userID, HashString(userID))
}

// RegeneratedSeed returns a fresh seed for a user asking for a new alien at now
func RegeneratedSeed(userID string, now time.Time) string {
	return Seed(userID + "_" + strconv.FormatInt(now.UnixMilli(), 10))
}

// PaletteFor picks the colour palette of a seed
func PaletteFor(seed string) Palette {
	return palettes[HashString(seed)%uint32(len(palettes))]
}

// Attributes derives the full attribute set from a seed
func Attributes(seed string) state.AlienAttributes {
	p := PaletteFor(seed)
	return state.AlienAttributes{
		BodyShape:      "circle",
		BodySize:       100,
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		GlowColor:      p.Glow,
		EyeType:        "round",
		EyeColor:       "#0080FF",
		EyeCount:       2,
		MouthType:      "oval",
		MouthColor:     "#00FF41",
		Accessories:    []string{},
		Pattern:        "none",
		AntennaType:    "none",
		SkinTexture:    "smooth",
	}
}
