package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/streak"
)

type theme struct {
	title  lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Style
}

// themeFor styles output only when w is a terminal.
func themeFor(w io.Writer) theme {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		plain := lipgloss.NewStyle()
		return theme{title: plain, good: plain, warn: plain, bad: plain, muted: plain, border: plain}
	}
	return theme{
		title:  lipgloss.NewStyle().Bold(true),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (t theme) phase(st services.Status) string {
	p := st.Profile
	switch st.Phase {
	case streak.ActiveToday:
		return t.good.Render(fmt.Sprintf("%d-day streak, done for today", p.Streak))
	case streak.AtRisk:
		return t.warn.Render(fmt.Sprintf("%d-day streak at risk, log something today to keep it", p.Streak))
	case streak.Broken:
		return t.bad.Render("streak broken")
	default:
		return t.muted.Render("no streak yet, add a journal entry to start one")
	}
}

func (t theme) status(st services.Status) string {
	p := st.Profile
	lines := []string{
		t.title.Render("VitalKeeper") + " " + t.muted.Render(st.Today),
		t.phase(st),
		fmt.Sprintf("streak:  %d (longest %d)", p.Streak, p.LongestStreak),
		fmt.Sprintf("level:   %d (%d XP)", st.Level, p.XP),
		fmt.Sprintf("coins:   %d", p.Coins),
	}
	if p.LastActivityDate != "" {
		lines = append(lines, t.muted.Render("last activity "+p.LastActivityDate))
	}
	return t.border.Render(strings.Join(lines, "\n"))
}
