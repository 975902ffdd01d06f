package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "short password",
			password: "pw123",
			wantErr:  nil,
		},
		{
			name:     "password at maximum length",
			password: strings.Repeat("a", 72),
			wantErr:  nil,
		},
		{
			name:     "password too long",
			password: strings.Repeat("a", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Hash() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("Hash() returned empty hash for valid password")
			}
		})
	}
}

func TestBcryptHasher_TooLongIsValidationError(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 100))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Hash() error = %v, want ErrValidation", err)
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	password := "testpassword123"
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		digest   string
		want     bool
	}{
		{"correct password", password, hash, true},
		{"incorrect password", "wrongpassword", hash, false},
		{"empty password", "", hash, false},
		{"malformed digest", password, "not-a-bcrypt-digest", false},
		{"empty digest", password, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.Verify(tt.password, tt.digest); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBcryptHasher_RoundTripManyPasswords(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	passwords := []string{"a", "pw123", "correct horse battery staple", "ünïcødé", strings.Repeat("z", 72)}

	for i, p := range passwords {
		digest, err := hasher.Hash(p)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", p, err)
		}
		if !hasher.Verify(p, digest) {
			t.Errorf("Verify(%q, Hash(%q)) = false", p, p)
		}
		other := passwords[(i+1)%len(passwords)]
		if hasher.Verify(other, digest) {
			t.Errorf("Verify(%q, Hash(%q)) = true", other, p)
		}
	}
}

func TestNewBcryptHasher_CostClamp(t *testing.T) {
	if got := NewBcryptHasher(0).Cost(); got != bcrypt.DefaultCost {
		t.Errorf("Cost() = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewBcryptHasher(100).Cost(); got != bcrypt.DefaultCost {
		t.Errorf("Cost() = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewBcryptHasher(5).Cost(); got != 5 {
		t.Errorf("Cost() = %d, want 5", got)
	}
}
