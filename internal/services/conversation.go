package services

import "mcp-gateway/internal/models"

// ShouldReset reports whether the agent should start a fresh session.
// A nil and an empty history are treated the same; turn content is never
// inspected.
func ShouldReset(history []models.ChatTurn) bool {
	return len(history) == 0
}
