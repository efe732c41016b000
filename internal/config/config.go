// Package config provides configuration helpers for go-headtrack
// commands: environment lookups and YAML tracking profiles.
package config

import (
	"os"
	"strconv"
)

// Default daemon configuration.
const (
	DefaultListenPort = 4242
	DefaultWebPort    = "8600"
	DefaultTickRate   = 120
)

// ListenPort returns the UDP tracking port from HEADTRACK_PORT.
// Falls back to the provided default if not set or unparsable.
func ListenPort(defaultPort int) int {
	if v := os.Getenv("HEADTRACK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			return p
		}
	}
	return defaultPort
}

// WebPort returns the dashboard port from HEADTRACK_WEB_PORT or the
// default.
func WebPort() string {
	if p := os.Getenv("HEADTRACK_WEB_PORT"); p != "" {
		return p
	}
	return DefaultWebPort
}

// LogLevel returns the logging level from HEADTRACK_LOG or "info".
func LogLevel() string {
	if l := os.Getenv("HEADTRACK_LOG"); l != "" {
		return l
	}
	return "info"
}

// MQTTBroker returns the broker URL from HEADTRACK_MQTT, empty when
// MQTT publishing is disabled.
func MQTTBroker() string {
	return os.Getenv("HEADTRACK_MQTT")
}
