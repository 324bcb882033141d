// Package level maps a level number to its gameplay parameters.
package level

import (
	"math"

	"github.com/mcoot/eggbreaker/internal/model"
)

// Scaling constants for hit points: hp = floor(BaseHP * level^GrowthFactor)
const (
	BaseHP       = 10
	GrowthFactor = 1.2
)

// tier is one step of the cosmetic tier chain
type tier struct {
	above int // strict lower bound on the level
	skin  model.Skin
	name  string
}

// Evaluated in order, first match wins
var tiers = []tier{
	{above: 100, skin: model.SkinObsidian, name: "Obsidian Egg"},
	{above: 50, skin: model.SkinDiamond, name: "Diamond Egg"},
	{above: 20, skin: model.SkinGold, name: "Golden Egg"},
}

var standard = tier{skin: model.SkinStandard, name: "Chicken Egg"}

// Resolve returns the config for a level. Levels below 1 are rejected
// with model.ErrInvalidLevel.
func Resolve(level int) (model.LevelConfig, error) {
	if level < 1 {
		return model.LevelConfig{}, model.ErrInvalidLevel
	}

	t := standard
	for _, candidate := range tiers {
		if level > candidate.above {
			t = candidate
			break
		}
	}

	return model.LevelConfig{
		HP:   HitPoints(level),
		Skin: t.skin,
		Name: t.name,
	}, nil
}

// HitPoints returns floor(BaseHP * level^GrowthFactor), saturating at
// math.MaxInt64 for levels whose result does not fit.
func HitPoints(level int) int64 {
	hp := math.Floor(BaseHP * math.Pow(float64(level), GrowthFactor))
	if hp >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(hp)
}
