package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steviee/mcskin/internal/mojang"
)

const (
	notchID   = "069a79f444e94726a5befca90e38aaf5"
	notchSkin = "http://textures.minecraft.net/texture/292009a4925b58f02c77dadc3ecef07ea4c7472f64e0fdc32ce5522489362680"
)

// mockResolver is a mock implementation of Resolver
type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, username string) (*mojang.Resolution, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mojang.Resolution), args.Error(1)
}

func notchResolution() *mojang.Resolution {
	return &mojang.Resolution{
		Identity: mojang.Identity{ID: notchID, Name: "Notch"},
		Profile:  mojang.Profile{ID: notchID, Name: "Notch"},
		Textures: &mojang.TexturesPayload{
			Textures: mojang.Textures{Skin: &mojang.SkinTexture{URL: notchSkin}},
		},
	}
}

func TestNewModel(t *testing.T) {
	model := NewModel(context.Background(), &mockResolver{})

	require.NotNil(t, model)
	assert.Empty(t, model.input)
	assert.Empty(t, model.history)
	assert.Nil(t, model.Init())

	_, ok := model.Latest()
	assert.False(t, ok)
}

func TestResolveCmd(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resolver := &mockResolver{}
		resolver.On("Resolve", ctx, "Notch").Return(notchResolution(), nil)

		msg := resolveCmd(ctx, resolver, "Notch")()

		resolved, ok := msg.(resolvedMsg)
		require.True(t, ok)
		assert.Equal(t, "Notch", resolved.username)
		assert.NoError(t, resolved.err)
		assert.Equal(t, notchSkin, resolved.resolution.SkinURL())
		resolver.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		resolver := &mockResolver{}
		resolver.On("Resolve", ctx, "nobody").Return(nil, mojang.ErrUsernameNotFound)

		msg := resolveCmd(ctx, resolver, "nobody")()

		resolved, ok := msg.(resolvedMsg)
		require.True(t, ok)
		assert.ErrorIs(t, resolved.err, mojang.ErrUsernameNotFound)
		assert.Nil(t, resolved.resolution)
		resolver.AssertExpectations(t)
	})
}

func TestEntryStatus(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{name: "failed", entry: Entry{Err: mojang.ErrUsernameNotFound}, want: "failed"},
		{name: "textured", entry: Entry{Resolution: notchResolution()}, want: "ok"},
		{
			name:  "default skin",
			entry: Entry{Resolution: &mojang.Resolution{Identity: mojang.Identity{ID: notchID}}},
			want:  "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := entryStatus(tt.entry)
			assert.Equal(t, tt.want, status)
			assert.NotEqual(t, "?", getStatusIndicator(status))
		})
	}

	assert.Equal(t, "?", getStatusIndicator("unknown"))
}
