package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eggbreaker/internal/model"
)

func TestResolveHitPointsFollowsFormula(t *testing.T) {
	for lvl := 1; lvl <= 500; lvl++ {
		cfg, err := Resolve(lvl)
		require.NoError(t, err)
		want := int64(math.Floor(10 * math.Pow(float64(lvl), 1.2)))
		assert.Equal(t, want, cfg.HP, "level %d", lvl)
	}
}

func TestResolveKnownValues(t *testing.T) {
	cases := []struct {
		level int
		hp    int64
	}{
		{1, 10},
		{2, 22},
		{10, 158},
	}
	for _, tc := range cases {
		cfg, err := Resolve(tc.level)
		require.NoError(t, err)
		assert.Equal(t, tc.hp, cfg.HP, "level %d", tc.level)
	}
}

func TestResolveTierBoundaries(t *testing.T) {
	cases := []struct {
		level int
		skin  model.Skin
		name  string
	}{
		{1, model.SkinStandard, "Chicken Egg"},
		{20, model.SkinStandard, "Chicken Egg"},
		{21, model.SkinGold, "Golden Egg"},
		{50, model.SkinGold, "Golden Egg"},
		{51, model.SkinDiamond, "Diamond Egg"},
		{100, model.SkinDiamond, "Diamond Egg"},
		{101, model.SkinObsidian, "Obsidian Egg"},
		{10000, model.SkinObsidian, "Obsidian Egg"},
	}
	for _, tc := range cases {
		cfg, err := Resolve(tc.level)
		require.NoError(t, err)
		assert.Equal(t, tc.skin, cfg.Skin, "level %d", tc.level)
		assert.Equal(t, tc.name, cfg.Name, "level %d", tc.level)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	a, err := Resolve(42)
	require.NoError(t, err)
	b, err := Resolve(42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResolveRejectsNonPositiveLevels(t *testing.T) {
	for _, lvl := range []int{0, -1, math.MinInt} {
		_, err := Resolve(lvl)
		assert.ErrorIs(t, err, model.ErrInvalidLevel)
	}
}

func TestHitPointsSaturates(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), HitPoints(math.MaxInt))
}
