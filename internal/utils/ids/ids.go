// Package ids generates the stable external identifiers used to match
// database rows with their spreadsheet counterparts across round trips.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

func hex16() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// NewItemID returns a stable expense item id of the form item_<hex16>.
func NewItemID() string {
	return "item_" + hex16()
}

// NewPayID returns a stable payment plan id of the form pay_<hex16>.
func NewPayID() string {
	return "pay_" + hex16()
}
