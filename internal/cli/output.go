package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/steviee/mcskin/internal/mojang"
	"github.com/steviee/mcskin/internal/state"
)

// Output represents the JSON output format.
type Output struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

func outputError(w io.Writer, jsonOutput bool, err error) error {
	if jsonOutput {
		_ = writeJSON(w, Output{
			Status: "error",
			Error:  err.Error(),
		})
	}
	return err
}

// userAgent returns the configured user agent or one naming this build.
func userAgent(cfg *state.Config) string {
	if cfg.API.UserAgent != "" {
		return cfg.API.UserAgent
	}
	return fmt.Sprintf("mcskin/%s (https://github.com/steviee/mcskin)", buildVersion)
}

// newResolver builds a resolver from the effective settings.
// recorder may be nil.
func newResolver(cfg *state.Config, recorder mojang.Recorder) (*mojang.Resolver, error) {
	maxBytes, err := cfg.Skins.MaxSizeBytes()
	if err != nil {
		return nil, fmt.Errorf("invalid skins.max_size: %w", err)
	}

	client := mojang.NewClient(&mojang.Config{
		IdentityURL:  cfg.API.IdentityURL,
		SessionURL:   cfg.API.SessionURL,
		Timeout:      cfg.API.Timeout,
		UserAgent:    userAgent(cfg),
		MaxSkinBytes: maxBytes,
		Logger:       slog.Default(),
		Recorder:     recorder,
	})

	return mojang.NewResolver(client, &mojang.ResolverConfig{
		CollapseDuplicates: cfg.API.CollapseDuplicates,
	}), nil
}
