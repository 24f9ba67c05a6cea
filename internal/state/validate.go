package state

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// ValidatePort validates a port number.
// Valid range: 1-65535
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// ValidateListenAddr validates a host:port listen address.
// The host may be empty (":8080" listens on all interfaces).
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in listen address %q", addr)
	}

	return ValidatePort(port)
}

// ValidateURL validates an absolute http(s) base URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https: %q", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("URL must have a host: %q", raw)
	}

	return nil
}

// ValidateSize validates a human readable size such as "1MB" or "512KB".
func ValidateSize(size string) error {
	if size == "" {
		return fmt.Errorf("size cannot be empty")
	}

	n, err := units.FromHumanSize(size)
	if err != nil {
		return fmt.Errorf("invalid size format: %q (expected format: 512KB, 1MB, etc.)", size)
	}

	if n <= 0 {
		return fmt.Errorf("size must be positive: %q", size)
	}

	return nil
}

// ValidateLogLevel validates a log level name.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", level)
	}
}

// ValidatePath validates a file path.
// This is a basic check to prevent directory traversal attacks.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain '..': %q", path)
	}

	return nil
}
