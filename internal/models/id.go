package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewHexID returns a 32-char lowercase hex identifier, the format used for
// wallet ids, invoice payment ids and transaction uuids.
func NewHexID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
