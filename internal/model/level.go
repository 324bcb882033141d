package model

// Skin is the cosmetic tier of the egg for a level
type Skin string

const (
	SkinStandard Skin = "standard"
	SkinGold     Skin = "gold"
	SkinDiamond  Skin = "diamond"
	SkinObsidian Skin = "obsidian"
)

// LevelConfig holds the gameplay parameters derived from a level.
// It is never persisted.
type LevelConfig struct {
	HP   int64
	Skin Skin
	Name string
}
