package mojang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// fetchJSON issues one GET and decodes a 200 body into dst.
// Any failure is logged once, counted, and returned as a *LookupError.
func (c *Client) fetchJSON(ctx context.Context, stage State, target string, notFound error, dst any) error {
	err := c.getJSON(ctx, target, notFound, dst)
	c.recorder.ObserveLookup(stage.endpoint(), resultLabel(err))
	if err == nil {
		return nil
	}

	c.logger.Warn("mojang lookup failed",
		"stage", stage.String(),
		"url", target,
		"error", err)

	return &LookupError{Stage: stage, URL: target, Err: err}
}

func (c *Client) getJSON(ctx context.Context, target string, notFound error, dst any) error {
	req, err := c.newRequest(ctx, target, "application/json")
	if err != nil {
		return err
	}

	c.logger.Debug("mojang API request", "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrAPIUnavailable, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, notFound)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return Kind(err).String()
}

// IsCanceled reports whether err was caused by context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
