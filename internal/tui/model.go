package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steviee/mcskin/internal/mojang"
)

const (
	maxInputLen = 16
	maxHistory  = 8
	errorTTL    = 3 * time.Second
)

// Resolver resolves a username to its profile and textures.
type Resolver interface {
	Resolve(ctx context.Context, username string) (*mojang.Resolution, error)
}

// Entry is one finished lookup shown in the history list
type Entry struct {
	Username   string
	Resolution *mojang.Resolution
	Err        error
	At         time.Time
}

// Model is the bubbletea model for the interactive skin prompt
type Model struct {
	input     string
	resolving string
	history   []Entry
	err       error
	errorTime time.Time
	width     int
	height    int
	resolver  Resolver
	ctx       context.Context
	quitting  bool
}

// NewModel creates a new prompt model
func NewModel(ctx context.Context, resolver Resolver) *Model {
	return &Model{
		history:  []Entry{},
		resolver: resolver,
		ctx:      ctx,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Latest returns the most recent history entry, if any
func (m Model) Latest() (Entry, bool) {
	if len(m.history) == 0 {
		return Entry{}, false
	}
	return m.history[0], true
}

// resolveCmd returns a command that resolves a username off the UI loop
func resolveCmd(ctx context.Context, resolver Resolver, username string) tea.Cmd {
	return func() tea.Msg {
		res, err := resolver.Resolve(ctx, username)
		return resolvedMsg{
			username:   username,
			resolution: res,
			err:        err,
		}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(errorTTL, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
