package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/steviee/mcskin/internal/mojang"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Prompt closed.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderPrompt())
	b.WriteString("\n")

	if m.resolving != "" {
		b.WriteString(fmt.Sprintf("\nResolving %s...\n", m.resolving))
	} else if latest, ok := m.Latest(); ok && latest.Err == nil {
		b.WriteString("\n")
		b.WriteString(RenderResolution(latest.Resolution))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderHistory())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.err != nil && time.Since(m.errorTime) < errorTTL {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
	}

	return b.String()
}

// renderHeader renders the prompt header
func (m Model) renderHeader() string {
	title := "mcskin"
	subtitle := "Minecraft skin lookup"

	totalWidth := 60
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := totalWidth - len(title) - len(subtitle) - 4
	if spacing < 1 {
		spacing = 1
	}

	return headerStyle.Render(fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), subtitle))
}

// renderPrompt renders the input line with a block cursor
func (m Model) renderPrompt() string {
	return promptStyle.Render("username> ") + m.input + "█"
}

// renderHistory renders finished lookups, newest first
func (m Model) renderHistory() string {
	var b strings.Builder

	for _, e := range m.history {
		status := entryStatus(e)
		indicator := getStatusStyle(status).Render(getStatusIndicator(status))

		detail := ""
		switch {
		case e.Err != nil:
			detail = mojang.Kind(e.Err).String()
		case e.Resolution != nil:
			detail = mojang.FormatUUID(e.Resolution.Identity.ID)
		}

		b.WriteString(fmt.Sprintf("%s %-16s  %s  %s\n", indicator, e.Username, e.At.Format("15:04:05"), detail))
	}

	return b.String()
}

// renderFooter renders the key help
func (m Model) renderFooter() string {
	return footerStyle.Render("[enter] resolve  [ctrl+u] clear input  [ctrl+l] clear history  [esc] quit")
}

// RenderResolution renders a resolution as a bordered card.
// It is shared with the human output of the resolve command.
func RenderResolution(res *mojang.Resolution) string {
	if res == nil {
		return ""
	}

	skin := res.EffectiveSkinURL()
	if res.SkinURL() == "" {
		skin += statusDefaultStyle.Render(" (default)")
	}

	cape := res.CapeURL()
	if cape == "" {
		cape = "-"
	}

	lines := []string{
		labelStyle.Render("Name") + res.Identity.Name,
		labelStyle.Render("UUID") + mojang.FormatUUID(res.Identity.ID),
		labelStyle.Render("Model") + res.Model(),
		labelStyle.Render("Skin") + skin,
		labelStyle.Render("Cape") + cape,
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}
