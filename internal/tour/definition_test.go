package tour_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

func TestDefaultCatalog(t *testing.T) {
	c := tour.DefaultCatalog()
	home, ok := c.Find("home")
	require.True(t, ok)
	require.True(t, home.AutoStart)
	require.Equal(t, []string{"home.reminders", "home.memories", "home.challenges", "home.points"}, home.Targets())
	require.Equal(t, geometry.PlacementAuto, home.Steps[0].Placement)
	require.Equal(t, geometry.PlacementTop, home.Steps[2].Placement)
	require.False(t, home.Steps[3].BackdropAdvances())

	upgrade, ok := c.Find("upgrade")
	require.True(t, ok)
	require.Equal(t, 0, *upgrade.Steps[0].Radius)
	require.Equal(t, 0, *upgrade.Steps[0].EdgeMargin.Top)
	require.Nil(t, upgrade.Steps[0].EdgeMargin.Bottom)

	_, ok = c.Find("missing")
	require.False(t, ok)
}

func TestParseCatalog_DefaultsStepIDs(t *testing.T) {
	c, err := tour.ParseCatalog([]byte(`
tours:
  - key: k
    steps:
      - text: one
      - text: two
        placement: LEFT
`), tour.FormatYAML)
	require.NoError(t, err)
	steps := c.Tours[0].Steps
	require.Equal(t, "step-1", steps[0].ID)
	require.Equal(t, "step-2", steps[1].ID)
	require.Equal(t, geometry.PlacementLeft, steps[1].Placement)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no steps", data: "tours:\n  - key: k\n"},
		{name: "missing key", data: "tours:\n  - steps:\n      - text: a\n"},
		{name: "duplicate key", data: "tours:\n  - key: k\n    steps: [{text: a}]\n  - key: k\n    steps: [{text: b}]\n"},
		{name: "bad placement", data: "tours:\n  - key: k\n    steps: [{text: a, placement: diagonal}]\n"},
		{name: "bad yaml", data: "tours: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tour.ParseCatalog([]byte(tt.data), tour.FormatYAML)
			require.Error(t, err)
		})
	}

	_, err := tour.ParseCatalog([]byte("tours:\n  - key: k\n"), tour.FormatYAML)
	require.ErrorIs(t, err, tour.ErrNoSteps)
}

func TestLoadCatalog_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tours.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tours":[{"key":"j","steps":[{"id":"a","target":"x","text":"hi","allow_backdrop_tap_to_next":false}]}]}`), 0o600))

	c, err := tour.LoadCatalog(path)
	require.NoError(t, err)
	d, ok := c.Find("j")
	require.True(t, ok)
	require.Equal(t, "x", d.Steps[0].TargetID)
	require.False(t, d.Steps[0].BackdropAdvances())

	tr := d.Tour("u1", nil)
	require.Equal(t, "j", tr.Key)
	require.Equal(t, "u1", tr.UserID)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := tour.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFor(t *testing.T) {
	require.Equal(t, tour.FormatJSON, tour.FormatFor("a/b.JSON"))
	require.Equal(t, tour.FormatYAML, tour.FormatFor("a/b.yml"))
}
