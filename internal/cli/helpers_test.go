package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steviee/mcskin/internal/mojang"
)

const (
	notchID = "069a79f444e94726a5befca90e38aaf5"
	plainID = "00000000000000000000000000000001"
)

var testPNG = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 56)...)

// mockResolver is a testify mock of Resolver.
type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, username string) (*mojang.Resolution, error) {
	args := m.Called(ctx, username)
	res, _ := args.Get(0).(*mojang.Resolution)
	return res, args.Error(1)
}

// mockDownloader is a testify mock of Downloader.
type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) DownloadSkin(ctx context.Context, textureURL string) ([]byte, error) {
	args := m.Called(ctx, textureURL)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func skinResolution(t *testing.T, id, name, skinURL, model string) *mojang.Resolution {
	t.Helper()

	payload := &mojang.TexturesPayload{
		Timestamp:   1700000000000,
		ProfileID:   id,
		ProfileName: name,
	}
	if skinURL != "" {
		payload.Textures.Skin = &mojang.SkinTexture{URL: skinURL}
		if model == mojang.ModelSlim {
			payload.Textures.Skin.Metadata = &mojang.SkinMetadata{Model: mojang.ModelSlim}
		}
	}

	value, err := mojang.EncodeTextures(payload)
	require.NoError(t, err)

	return &mojang.Resolution{
		Identity: mojang.Identity{ID: id, Name: name},
		Profile: mojang.Profile{
			ID:   id,
			Name: name,
			Properties: []mojang.Property{
				{Name: mojang.TexturesProperty, Value: value, Signature: "c2ln"},
			},
		},
		Textures: payload,
	}
}

// newFakeMojang serves the identity, profile and texture endpoints for
// Notch (custom skin) and Plain (no textures property).
func newFakeMojang(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("GET /users/profiles/minecraft/{name}", func(w http.ResponseWriter, r *http.Request) {
		var identity mojang.Identity
		switch strings.ToLower(r.PathValue("name")) {
		case "notch":
			identity = mojang.Identity{ID: notchID, Name: "Notch"}
		case "plain":
			identity = mojang.Identity{ID: plainID, Name: "Plain"}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(identity)
	})

	mux.HandleFunc("GET /session/minecraft/profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case notchID:
			res := skinResolution(t, notchID, "Notch", server.URL+"/texture/notch", mojang.ModelClassic)
			_ = json.NewEncoder(w).Encode(res.Profile)
		case plainID:
			_ = json.NewEncoder(w).Encode(mojang.Profile{ID: plainID, Name: "Plain", Properties: []mojang.Property{}})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	mux.HandleFunc("GET /texture/notch", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testPNG)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// isolate points config and env lookups at temp locations and resets the
// package-level state touched by the root command.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	t.Cleanup(func() {
		cfgFile = ""
		envFile = ""
		jsonOut = false
		quiet = false
		verbose = false
	})

	return filepath.Join(dir, "mcskin")
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
	cmd.SetArgs(args)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
