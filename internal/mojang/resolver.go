package mojang

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
)

// State is the position of a resolution in the lookup pipeline.
type State int

const (
	StateAwaitingIdentity State = iota
	StateAwaitingProfile
	StateDecodingTextures
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingIdentity:
		return "awaiting_identity"
	case StateAwaitingProfile:
		return "awaiting_profile"
	case StateDecodingTextures:
		return "decoding_textures"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) operation() string {
	switch s {
	case StateAwaitingIdentity:
		return "identity lookup"
	case StateAwaitingProfile:
		return "profile lookup"
	case StateDecodingTextures:
		return "textures decode"
	default:
		return "resolution"
	}
}

// endpoint is the metrics label of the request issued in this state.
func (s State) endpoint() string {
	switch s {
	case StateAwaitingIdentity:
		return "identity"
	case StateAwaitingProfile:
		return "profile"
	default:
		return "texture"
	}
}

// ResolverConfig holds resolver configuration.
type ResolverConfig struct {
	// CollapseDuplicates shares one pipeline between concurrent
	// resolutions of the same username.
	CollapseDuplicates bool
}

// Resolver chains the identity and profile lookups.
type Resolver struct {
	client *Client
	group  *singleflight.Group
}

// NewResolver creates a resolver on top of client.
func NewResolver(client *Client, config *ResolverConfig) *Resolver {
	if config == nil {
		config = &ResolverConfig{}
	}

	r := &Resolver{client: client}
	if config.CollapseDuplicates {
		r.group = &singleflight.Group{}
	}

	return r
}

// Client returns the underlying API client.
func (r *Resolver) Client() *Client {
	return r.client
}

// Resolve looks up the identity for username, then its profile, and
// decodes the textures property if present.
// When duplicates are collapsed, the returned Resolution may be shared
// with other callers and must not be modified.
func (r *Resolver) Resolve(ctx context.Context, username string) (*Resolution, error) {
	if r.group == nil {
		return r.resolve(ctx, username)
	}

	// The shared pipeline outlives any single caller; each caller only
	// stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(strings.ToLower(username), func() (interface{}, error) {
		return r.resolve(shared, username)
	})

	select {
	case result := <-ch:
		if result.Shared {
			r.client.logger.Debug("resolution shared with concurrent caller", "username", username)
		}
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*Resolution), nil

	case <-ctx.Done():
		target := r.client.IdentityURL(username)
		err := fmt.Errorf("%w: %w", ErrAPIUnavailable, ctx.Err())
		r.client.logger.Warn("mojang lookup abandoned",
			"stage", StateAwaitingIdentity.String(),
			"url", target,
			"error", err)
		r.client.recorder.ObserveResolution(resultLabel(err))
		return nil, &LookupError{Stage: StateAwaitingIdentity, URL: target, Err: err}
	}
}

// ResolveAsync runs Resolve on its own goroutine and returns immediately.
// onSuccess, if non-nil, is called only if the resolution succeeds;
// failures are reported through the client's logger.
func (r *Resolver) ResolveAsync(ctx context.Context, username string, onSuccess func(*Resolution)) {
	go func() {
		res, err := r.Resolve(ctx, username)
		if err != nil || onSuccess == nil {
			return
		}
		onSuccess(res)
	}()
}

func (r *Resolver) resolve(ctx context.Context, username string) (*Resolution, error) {
	res, err := r.run(ctx, username)
	r.client.recorder.ObserveResolution(resultLabel(err))
	return res, err
}

func (r *Resolver) run(ctx context.Context, username string) (*Resolution, error) {
	identity, err := r.client.LookupIdentity(ctx, username)
	if err != nil {
		return nil, err
	}

	profile, err := r.client.LookupProfile(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	textures, err := profile.Textures()
	if err != nil {
		target := r.client.ProfileURL(canonicalID(identity.ID))
		r.client.logger.Warn("mojang lookup failed",
			"stage", StateDecodingTextures.String(),
			"url", target,
			"error", err)
		return nil, &LookupError{
			Stage: StateDecodingTextures,
			URL:   target,
			Err:   err,
		}
	}

	r.client.logger.Debug("mojang resolution complete",
		"username", username,
		"id", identity.ID,
		"has_textures", textures != nil)

	return &Resolution{
		Identity: *identity,
		Profile:  *profile,
		Textures: textures,
	}, nil
}
