// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserDirectory: user lookup by email and insert (internal/auth/service.go)
//   - UserCounter: user count for the health check (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - AuthEventLogger / AuthEventReader: auth event trail (internal/http)
//   - EventPruner: retention job (internal/scheduler/audit_prune.go)
//
// ## Credential Interfaces
//
//   - Hasher: password digests (internal/auth/password.go)
//
// # Adding a New User Store
//
// To back the directory with something other than sqlite:
//
//  1. Create a sub-package under internal/database/ with a Repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func (r *Repository) FindByEmail(ctx context.Context, email string) (*entities.User, error)
//     func (r *Repository) Insert(ctx context.Context, user *entities.User) (string, error)
//
//  2. Return auth.ErrUserNotFound on a miss and auth.ErrDuplicateEmail when
//     the email is taken. The store must enforce uniqueness itself; the
//     gateway's pre-check is not enough under concurrent registrations.
//
//  3. Add a compile-time check to checks.go:
//
//     var _ auth.UserDirectory = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
