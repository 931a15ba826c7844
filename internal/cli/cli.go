// Package cli defines the flowstate commands and the shared context
// they run against.
package cli

import (
	"github.com/flowstate/api/internal/storage"
)

// Context carries the dependencies shared by all commands.
type Context struct {
	Store     *storage.Store
	JWTSecret string
}
