package mojang

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePNG(size int) []byte {
	data := make([]byte, 0, size)
	data = append(data, pngSignature...)
	return append(data, bytes.Repeat([]byte{0}, size-len(pngSignature))...)
}

func TestClient_DownloadSkin(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       []byte
		maxBytes   int64
		wantErr    error
		wantKind   ErrorKind
	}{
		{
			name:       "png skin",
			statusCode: http.StatusOK,
			body:       fakePNG(256),
		},
		{
			name:       "exactly at limit",
			statusCode: http.StatusOK,
			body:       fakePNG(64),
			maxBytes:   64,
		},
		{
			name:       "over limit",
			statusCode: http.StatusOK,
			body:       fakePNG(65),
			maxBytes:   64,
			wantErr:    ErrSkinTooLarge,
			wantKind:   KindParse,
		},
		{
			name:       "not a png",
			statusCode: http.StatusOK,
			body:       []byte("<html>nope</html>"),
			wantErr:    ErrNotPNG,
			wantKind:   KindParse,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimitExceeded,
			wantKind:   KindTransport,
		},
		{
			name:       "missing texture",
			statusCode: http.StatusNotFound,
			wantKind:   KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "image/png", r.Header.Get("Accept"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write(tt.body)
			}))
			defer server.Close()

			logger, rec := newRecordingLogger()
			client := NewClient(&Config{Logger: logger, MaxSkinBytes: tt.maxBytes})

			data, err := client.DownloadSkin(context.Background(), server.URL+"/texture/abc")
			if tt.wantKind != KindUnknown {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Equal(t, tt.wantKind, Kind(err))
				assert.Nil(t, data)
				assert.Equal(t, []string{server.URL + "/texture/abc"}, rec.warnings())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.body, data)
			assert.Empty(t, rec.warnings())
		})
	}
}
