package keys

import (
	"fmt"
	"strings"
)

// DefaultDataset names the snapshot read when none is configured.
const DefaultDataset = "fukuoka"

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// Dataset returns the canonical S3 key for a dataset snapshot.
func Dataset(name string) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultDataset
	}
	return fmt.Sprintf("datasets/%s.json", sanitizeKey(name))
}
