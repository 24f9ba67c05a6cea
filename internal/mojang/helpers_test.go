package mojang

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	notchID   = "069a79f444e94726a5befca90e38aaf5"
	notchSkin = "http://textures.minecraft.net/texture/292009a4925b58f02c77dadc3ecef07ea4c7472f64e0fdc32ce5522489362680"
	jebID     = "853c80ef3c3749fdaa49938b674adae6"
	jebSkin   = "http://textures.minecraft.net/texture/7fd9ba42a7c81eeea22f1524271ae85a8e045ce0af5a6ae16c6406ae917e68b5"
)

// recordingHandler is a slog.Handler that keeps every record.
type recordingHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
}

func newRecordingLogger() (*slog.Logger, *recordingHandler) {
	h := &recordingHandler{mu: &sync.Mutex{}, records: &[]slog.Record{}}
	return slog.New(h), h
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

// warnings returns the "url" attribute of every warning-level record.
// Records without a url attribute contribute an empty string.
func (h *recordingHandler) warnings() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var urls []string
	for _, r := range *h.records {
		if r.Level < slog.LevelWarn {
			continue
		}
		u := ""
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "url" {
				u = a.Value.String()
				return false
			}
			return true
		})
		urls = append(urls, u)
	}
	return urls
}

// fakeMojang serves the identity and profile endpoints from memory.
type fakeMojang struct {
	t        *testing.T
	users    map[string]Identity
	profiles map[string]Profile

	identityHits atomic.Int32
	profileHits  atomic.Int32

	// gate, when set, blocks identity lookups until closed.
	gate chan struct{}
}

func newFakeMojang(t *testing.T) (*fakeMojang, *httptest.Server) {
	t.Helper()

	f := &fakeMojang{
		t:        t,
		users:    make(map[string]Identity),
		profiles: make(map[string]Profile),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/profiles/minecraft/{name}", f.handleIdentity)
	mux.HandleFunc("GET /session/minecraft/profile/{id}", f.handleProfile)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return f, server
}

func (f *fakeMojang) addPlayer(name, id, skinURL string) {
	f.t.Helper()

	f.users[strings.ToLower(name)] = Identity{ID: id, Name: name}

	profile := Profile{ID: id, Name: name, Properties: []Property{}}
	if skinURL != "" {
		value, err := EncodeTextures(&TexturesPayload{
			Timestamp:   1700000000000,
			ProfileID:   id,
			ProfileName: name,
			Textures: Textures{
				Skin: &SkinTexture{URL: skinURL},
			},
		})
		require.NoError(f.t, err)
		profile.Properties = append(profile.Properties, Property{
			Name:      TexturesProperty,
			Value:     value,
			Signature: "c2lnbmF0dXJl",
		})
	}
	f.profiles[id] = profile
}

func (f *fakeMojang) handleIdentity(w http.ResponseWriter, r *http.Request) {
	f.identityHits.Add(1)
	if f.gate != nil {
		<-f.gate
	}

	identity, ok := f.users[strings.ToLower(r.PathValue("name"))]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(identity)
}

func (f *fakeMojang) handleProfile(w http.ResponseWriter, r *http.Request) {
	f.profileHits.Add(1)

	profile, ok := f.profiles[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}

func newTestClient(serverURL string, logger *slog.Logger) *Client {
	return NewClient(&Config{
		IdentityURL: serverURL,
		SessionURL:  serverURL,
		Logger:      logger,
	})
}
