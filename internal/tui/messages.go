package tui

import "github.com/steviee/mcskin/internal/mojang"

// resolvedMsg is sent when a resolution finishes
type resolvedMsg struct {
	username   string
	resolution *mojang.Resolution
	err        error
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
