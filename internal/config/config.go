// Package config provides configuration helpers for go-nao commands.
// Everything is read from the environment; there are no CLI flags.
package config

import (
	"fmt"
	"os"
)

// Defaults for the NAO bridge and the Ollama endpoint.
const (
	DefaultBridgePort = "8070"
	DefaultEventPort  = "8071"
	DefaultOllamaURL  = "http://localhost:11434"
	DefaultModel      = "mistral"
)

// RobotIP returns the robot IP from NAO_IP env var.
// Falls back to the provided default if not set.
func RobotIP(defaultIP string) string {
	if ip := os.Getenv("NAO_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// RobotIPRequired returns the robot IP from NAO_IP env var.
// Exits with usage help if not set.
func RobotIPRequired() string {
	ip := os.Getenv("NAO_IP")
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: NAO_IP environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: NAO_IP=172.18.16.54 go run ./cmd/...")
		os.Exit(1)
	}
	return ip
}

// BridgeURL returns the NAO HTTP bridge base URL.
func BridgeURL(robotIP string) string {
	return fmt.Sprintf("http://%s:%s", robotIP, DefaultBridgePort)
}

// EventURL returns the NAO bridge websocket event endpoint.
func EventURL(robotIP string) string {
	return fmt.Sprintf("ws://%s:%s/ws/events", robotIP, DefaultEventPort)
}

// OllamaURL returns the Ollama base URL from OLLAMA_URL env var or default.
func OllamaURL() string {
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		return url
	}
	return DefaultOllamaURL
}

// OllamaModel returns the chat model from OLLAMA_MODEL env var or default.
func OllamaModel() string {
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		return model
	}
	return DefaultModel
}

// DataDir returns the directory for persisted records from DATA_DIR,
// falling back to the given default.
func DataDir(fallback string) string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return fallback
}

// DashboardPort returns the dashboard listen port from DASHBOARD_PORT.
// Empty means the dashboard is disabled.
func DashboardPort() string {
	return os.Getenv("DASHBOARD_PORT")
}
