package prescription

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// newID creates a 7-character hex ID from the owner, name and creation time.
func newID(user, name string, created time.Time) string {
	seed := fmt.Sprintf("%s\x00%s\x00%d", user, name, created.UnixNano())
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}
