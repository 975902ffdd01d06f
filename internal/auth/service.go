package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/schoolapp/internal/entities"
)

// Errors a UserDirectory reports for the gateway to translate.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserDirectory is the storage the gateway needs. Insert must reject a
// duplicate email with ErrDuplicateEmail, FindByEmail a miss with
// ErrUserNotFound.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Insert(ctx context.Context, user *entities.User) (string, error)
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Name     string        `validate:"required,max=200"`
	Email    string        `validate:"required,email,max=254"`
	Password string        `validate:"required"`
	Role     entities.Role `validate:"required,oneof=student teacher"`
	Grade    string        `validate:"required_if=Role student,max=50"`
}

// RegisterResult carries the new identity and its first access token.
type RegisterResult struct {
	UserID      string
	AccessToken string
}

// LoginResult carries the authenticated identity and its access token.
type LoginResult struct {
	UserID      string
	AccessToken string
}

// Service composes the hasher, token issuer and user directory into the
// register, login and current-user flows.
type Service struct {
	users  UserDirectory
	hasher Hasher
	tokens *TokenIssuer
	now    func() time.Time

	// dummyDigest is verified on lookup misses so a missing account costs
	// the same as a wrong password.
	dummyDigest string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the auth gateway.
func NewService(users UserDirectory, hasher Hasher, tokens *TokenIssuer, opts ...Option) (*Service, error) {
	s := &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}
	s.dummyDigest = dummy

	return s, nil
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(in *RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Grade = strings.TrimSpace(in.Grade)

	return validateStruct(in)
}

// Register creates an account and returns its id with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if err := validateRegistration(&in); err != nil {
		return nil, err
	}

	// Fast path for a friendly error. The unique index on email is what
	// actually guards against concurrent registrations.
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:           in.Name,
		Email:          in.Email,
		Role:           in.Role,
		HashedPassword: digest,
	}
	if in.Grade != "" {
		grade := in.Grade
		user.Grade = &grade
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(id, user.Email, user.Role, s.now())
	if err != nil {
		return nil, err
	}

	return &RegisterResult{UserID: id, AccessToken: token}, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: user.ID, AccessToken: token}, nil
}

// CurrentUser resolves a bearer token to the user it was issued for.
// The result reflects the directory's current record, not the token's
// role claim. A token whose subject no longer matches the record for its
// email (account deleted and re-registered) is rejected.
func (s *Service) CurrentUser(ctx context.Context, token string) (*entities.PublicUser, error) {
	user, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *Service) authenticate(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.Verify(token, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.ID != claims.Subject {
		return nil, ErrUnauthorized
	}
	return user, nil
}
