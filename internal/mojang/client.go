package mojang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultIdentityURL is the default base URL of the identity lookup.
	DefaultIdentityURL = "https://api.mojang.com"

	// DefaultSessionURL is the default base URL of the profile lookup.
	DefaultSessionURL = "https://sessionserver.mojang.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxSkinBytes bounds skin downloads.
	DefaultMaxSkinBytes = 1 << 20

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "mcskin/dev (https://github.com/steviee/mcskin)"

	identityPathFmt = "%s/users/profiles/minecraft/%s"
	profilePathFmt  = "%s/session/minecraft/profile/%s"
)

// Recorder observes lookups. Results are "ok" or an ErrorKind name.
type Recorder interface {
	ObserveLookup(endpoint, result string)
	ObserveResolution(result string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLookup(string, string) {}
func (nopRecorder) ObserveResolution(string)     {}

// Client performs the identity and profile lookups against the Mojang APIs.
type Client struct {
	identityURL  string
	sessionURL   string
	httpClient   *http.Client
	userAgent    string
	maxSkinBytes int64
	logger       *slog.Logger
	recorder     Recorder
}

// Config holds client configuration.
type Config struct {
	IdentityURL string
	SessionURL  string
	// Timeout bounds each HTTP exchange. Zero selects DefaultTimeout,
	// a negative value disables the timeout.
	Timeout      time.Duration
	UserAgent    string
	MaxSkinBytes int64
	HTTPClient   *http.Client
	Logger       *slog.Logger
	Recorder     Recorder
}

// NewClient creates a new Mojang API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.IdentityURL == "" {
		config.IdentityURL = DefaultIdentityURL
	}

	if config.SessionURL == "" {
		config.SessionURL = DefaultSessionURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	if config.MaxSkinBytes <= 0 {
		config.MaxSkinBytes = DefaultMaxSkinBytes
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var recorder Recorder = nopRecorder{}
	if config.Recorder != nil {
		recorder = config.Recorder
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
		if config.Timeout > 0 {
			httpClient.Timeout = config.Timeout
		}
	}

	logger.Debug("creating Mojang API client",
		"identity_url", config.IdentityURL,
		"session_url", config.SessionURL,
		"timeout", config.Timeout)

	return &Client{
		identityURL:  strings.TrimRight(config.IdentityURL, "/"),
		sessionURL:   strings.TrimRight(config.SessionURL, "/"),
		httpClient:   httpClient,
		userAgent:    config.UserAgent,
		maxSkinBytes: config.MaxSkinBytes,
		logger:       logger,
		recorder:     recorder,
	}
}

// IdentityURL returns the identity lookup URL for a username.
func (c *Client) IdentityURL(username string) string {
	return fmt.Sprintf(identityPathFmt, c.identityURL, url.PathEscape(username))
}

// ProfileURL returns the profile lookup URL for an identifier.
func (c *Client) ProfileURL(id string) string {
	return fmt.Sprintf(profilePathFmt, c.sessionURL, url.PathEscape(id))
}

// LookupIdentity maps a username to its identity.
// Invalid usernames fail before any request is made.
func (c *Client) LookupIdentity(ctx context.Context, username string) (*Identity, error) {
	if err := ValidateUsername(username); err != nil {
		c.logger.Warn("mojang lookup rejected",
			"stage", StateAwaitingIdentity.String(),
			"username", username,
			"error", err)
		return nil, &LookupError{
			Stage: StateAwaitingIdentity,
			Err:   fmt.Errorf("%w: %v", ErrInvalidUsername, err),
		}
	}

	target := c.IdentityURL(username)

	var identity Identity
	if err := c.fetchJSON(ctx, StateAwaitingIdentity, target, ErrUsernameNotFound, &identity); err != nil {
		return nil, err
	}

	c.logger.Debug("mojang identity lookup success",
		"username", username,
		"id", identity.ID)

	return &identity, nil
}

// LookupProfile maps an identifier to its session profile.
// A missing or malformed identifier fails without issuing the request.
func (c *Client) LookupProfile(ctx context.Context, id string) (*Profile, error) {
	parsed, err := parseID(id)
	if err != nil {
		target := c.ProfileURL(id)
		c.logger.Warn("mojang lookup failed",
			"stage", StateAwaitingProfile.String(),
			"url", target,
			"error", err)
		c.recorder.ObserveLookup(StateAwaitingProfile.endpoint(), KindInvalidInput.String())
		return nil, &LookupError{
			Stage: StateAwaitingProfile,
			URL:   target,
			Err:   fmt.Errorf("%w: %v", ErrInvalidIdentifier, err),
		}
	}

	target := c.ProfileURL(undashed(parsed))

	var profile Profile
	if err := c.fetchJSON(ctx, StateAwaitingProfile, target, ErrProfileNotFound, &profile); err != nil {
		return nil, err
	}

	c.logger.Debug("mojang profile lookup success",
		"id", profile.ID,
		"properties", len(profile.Properties))

	return &profile, nil
}

// newRequest builds a GET request carrying the client headers.
func (c *Client) newRequest(ctx context.Context, target, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	return req, nil
}

// statusError maps a non-200 response to an error.
func statusError(resp *http.Response, notFound error) error {
	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusNotFound:
		return notFound

	case http.StatusTooManyRequests:
		return ErrRateLimitExceeded

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return NewAPIError(resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// ValidateUsername validates a Minecraft username.
// Rules:
// - Must be 1-16 characters long
// - Must contain only alphanumeric characters and underscores
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > 16 {
		return fmt.Errorf("username must be 16 characters or less, got %d", len(username))
	}

	// Minecraft usernames can only contain alphanumeric and underscores
	for _, ch := range username {
		isAlpha := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		isUnderscore := ch == '_'

		if !isAlpha && !isDigit && !isUnderscore {
			return fmt.Errorf("username must contain only alphanumeric characters and underscores: %q", username)
		}
	}

	return nil
}

func parseID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.Nil, fmt.Errorf("identifier cannot be empty")
	}
	if len(id) != 32 && len(id) != 36 {
		return uuid.Nil, fmt.Errorf("identifier must be 32 or 36 characters, got %d", len(id))
	}
	return uuid.Parse(id)
}

func undashed(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// canonicalID returns the undashed form the profile lookup requests.
// Identifiers that don't parse are returned unchanged.
func canonicalID(id string) string {
	parsed, err := parseID(id)
	if err != nil {
		return id
	}
	return undashed(parsed)
}

// FormatUUID formats a profile identifier with dashes.
// Input:  "069a79f444e94726a5befca90e38aaf5"
// Output: "069a79f4-44e9-4726-a5be-fca90e38aaf5"
// Identifiers that don't parse are returned unchanged.
func FormatUUID(id string) string {
	parsed, err := parseID(id)
	if err != nil {
		return id
	}
	return parsed.String()
}
