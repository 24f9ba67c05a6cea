package tui

import (
	"fmt"
	"log/slog"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steviee/mcskin/internal/mojang"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resolvedMsg:
		m.resolving = ""

		m.history = append([]Entry{{
			Username:   msg.username,
			Resolution: msg.resolution,
			Err:        msg.err,
			At:         time.Now(),
		}}, m.history...)
		if len(m.history) > maxHistory {
			m.history = m.history[:maxHistory]
		}

		if msg.err != nil {
			m.err = fmt.Errorf("%s: %w", msg.username, msg.err)
			m.errorTime = time.Now()
			slog.Debug("prompt resolution failed", "username", msg.username, "error", msg.err)
			return m, clearErrorCmd()
		}

		slog.Debug("prompt resolution succeeded", "username", msg.username, "id", msg.resolution.Identity.ID)
		return m, nil

	case clearErrorMsg:
		if time.Since(m.errorTime) >= errorTTL {
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case tea.KeyCtrlU:
		m.input = ""
		return m, nil

	case tea.KeyCtrlL:
		m.history = []Entry{}
		m.err = nil
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(m.input) >= maxInputLen || r > unicode.MaxASCII || !unicode.IsPrint(r) || r == ' ' {
				continue
			}
			m.input += string(r)
		}
		return m, nil
	}

	return m, nil
}

// submit starts a resolution of the current input
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.resolving != "" || m.input == "" {
		return m, nil
	}

	username := m.input
	if err := mojang.ValidateUsername(username); err != nil {
		m.err = err
		m.errorTime = time.Now()
		return m, clearErrorCmd()
	}

	m.input = ""
	m.resolving = username
	m.err = nil

	return m, resolveCmd(m.ctx, m.resolver, username)
}
