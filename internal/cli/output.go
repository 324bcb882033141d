package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressBarWidth = 20

// skinColors maps egg skins to ANSI colors for text output
var skinColors = map[string]lipgloss.Color{
	"standard": lipgloss.Color("7"),
	"gold":     lipgloss.Color("11"),
	"diamond":  lipgloss.Color("14"),
	"obsidian": lipgloss.Color("5"),
}

// Output handles formatting output based on the configured format
type Output struct {
	format   string
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewOutput creates a new Output formatter writing to w. Colors are only
// emitted when w is a terminal.
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w, renderer: lipgloss.NewRenderer(w)}
}

func (o *Output) style() lipgloss.Style {
	return o.renderer.NewStyle()
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case TapResult:
		o.printTapResult(v)
	case Egg:
		o.printEgg(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Identity response type (matches API)
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
}

// Profile response type
type Profile struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	Clicks      int64  `json:"clicks"`
	TotalClicks int64  `json:"total_clicks"`
	LastLogin   string `json:"last_login"`
}

// Egg response type
type Egg struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Skin        string `json:"skin"`
	HP          int64  `json:"hp"`
	RemainingHP int64  `json:"remaining_hp"`
}

// Session response type
type Session struct {
	SessionToken string    `json:"session_token,omitempty"`
	Identity     *Identity `json:"identity"`
	DemoMode     bool      `json:"demo_mode"`
	Profile      *Profile  `json:"profile"`
	Egg          *Egg      `json:"egg"`
	SavePending  bool      `json:"save_pending"`
}

// TapResult response type
type TapResult struct {
	Accepted int     `json:"accepted"`
	LevelUps int     `json:"level_ups"`
	Profile  Profile `json:"profile"`
	Egg      Egg     `json:"egg"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	TotalClicks int64  `json:"total_clicks"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status         string `json:"status"`
	RemoteStore    bool   `json:"remote_store"`
	ActiveSessions int    `json:"active_sessions"`
}

func (o *Output) printSession(s Session) {
	if s.Identity == nil {
		fmt.Fprintln(o.w, "Not signed in")
		return
	}

	mode := ""
	if s.DemoMode {
		mode = " [demo]"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)%s\n", s.Identity.DisplayName, s.Identity.UID, mode)
	if s.Profile != nil {
		fmt.Fprintf(o.w, "Level: %d\n", s.Profile.Level)
		fmt.Fprintf(o.w, "Total Clicks: %d\n", s.Profile.TotalClicks)
	}
	if s.Egg != nil {
		o.printEgg(*s.Egg)
	}
	if s.SessionToken != "" {
		fmt.Fprintf(o.w, "Token: %s\n", s.SessionToken)
	}
}

func (o *Output) printTapResult(t TapResult) {
	fmt.Fprintf(o.w, "Taps: %d\n", t.Accepted)
	for i := 0; i < t.LevelUps; i++ {
		fmt.Fprintln(o.w, o.style().Bold(true).Foreground(lipgloss.Color("10")).Render("Egg cracked! Level up!"))
	}
	fmt.Fprintf(o.w, "Level: %d\n", t.Profile.Level)
	fmt.Fprintf(o.w, "Total Clicks: %d\n", t.Profile.TotalClicks)
	o.printEgg(t.Egg)
}

func (o *Output) printEgg(e Egg) {
	skin := o.style().Foreground(skinColors[e.Skin])
	fmt.Fprintf(o.w, "Egg: %s (%s)\n", skin.Render(e.Name), e.Skin)
	fmt.Fprintf(o.w, "HP: %s %d/%d\n", skin.Render(progressBar(e.RemainingHP, e.HP)), e.RemainingHP, e.HP)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Fprintln(o.w, "No players yet")
		return
	}
	fmt.Fprintln(o.w, o.style().Bold(true).Render(fmt.Sprintf("%-4s %-24s %6s %12s", "#", "Player", "Level", "Clicks")))
	for _, e := range l.Entries {
		fmt.Fprintf(o.w, "%-4d %-24s %6d %12d\n", e.Rank, e.DisplayName, e.Level, e.TotalClicks)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	remote := "disabled"
	if h.RemoteStore {
		remote = "enabled"
	}
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Remote Store: %s\n", remote)
	fmt.Fprintf(o.w, "Active Sessions: %d\n", h.ActiveSessions)
}

// progressBar renders remaining hp as a fixed width bar
func progressBar(remaining, total int64) string {
	filled := 0
	if total > 0 && remaining > 0 {
		filled = int(float64(remaining) / float64(total) * progressBarWidth)
		if filled == 0 {
			filled = 1
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
}
