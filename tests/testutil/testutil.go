// Package testutil carries the small helpers shared between the invoice
// service test suites.
package testutil

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testNamespace seeds deterministic UUIDs so fixtures referencing the same
// entity agree across test files.
var testNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// NewTestUUID derives a stable UUID from a seed string. The same seed
// always yields the same ID.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(testNamespace, []byte(seed))
}

// TestUserID is the invoice owner used by fixtures that do not care about
// a specific user.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}
