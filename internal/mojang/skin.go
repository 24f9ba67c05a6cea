package mojang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// DownloadSkin fetches the raw PNG bytes of a texture URL.
// The image is not decoded; only its signature and size are checked.
func (c *Client) DownloadSkin(ctx context.Context, textureURL string) ([]byte, error) {
	data, err := c.download(ctx, textureURL)
	c.recorder.ObserveLookup("texture", resultLabel(err))
	if err != nil {
		c.logger.Warn("skin download failed", "url", textureURL, "error", err)
		return nil, fmt.Errorf("download skin %s: %w", textureURL, err)
	}

	c.logger.Debug("skin downloaded", "url", textureURL, "bytes", len(data))
	return data, nil
}

func (c *Client) download(ctx context.Context, textureURL string) ([]byte, error) {
	req, err := c.newRequest(ctx, textureURL, "image/png")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, NewAPIError(resp.StatusCode, "texture not found"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSkinBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}

	if int64(len(data)) > c.maxSkinBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSkinTooLarge, c.maxSkinBytes)
	}

	if !bytes.HasPrefix(data, pngSignature) {
		return nil, ErrNotPNG
	}

	return data, nil
}
