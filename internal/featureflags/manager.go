// Package featureflags evaluates feature flags from a simple config list.
package featureflags

import (
	"strings"
)

// BlockCascade makes the block toggle also sever follow edges and
// pending requests between the two users. Off by default: the shipped
// behavior is that blocking does not touch the follow graph.
const BlockCascade = "block_cascade"

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "block_cascade=on,new_feed=off"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled returns whether a flag is switched on.
// Supported values: on/true/1 and off/false/0.
func (m *Manager) Enabled(name string) bool {
	if m == nil {
		return false
	}
	switch m.flags[normalize(name)] {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
