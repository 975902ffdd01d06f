package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/schoolapp/internal/audit"
	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/database/users"
	"github.com/mrlokans/schoolapp/internal/http"
	"github.com/mrlokans/schoolapp/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// UserDirectory implementations
var _ auth.UserDirectory = (*users.Repository)(nil)

// UserCounter implementations (health endpoint)
var _ http.UserCounter = (*users.Repository)(nil)

// =============================================================================
// Credentials
// =============================================================================

var _ auth.Hasher = (*auth.BcryptHasher)(nil)

// =============================================================================
// Audit
// =============================================================================

var _ http.AuthEventLogger = (*audit.Service)(nil)
var _ http.AuthEventReader = (*audit.Service)(nil)
var _ scheduler.EventPruner = (*audit.Service)(nil)
