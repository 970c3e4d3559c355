// Package credentials hashes passwords with PBKDF2-SHA512 and issues HS256
// access tokens.
package credentials

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

const (
	DefaultIterations = 350000
	saltSize          = 64
	keySize           = 64
	defaultTokenTTL   = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the registered JWT claims plus the caller's role.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Store implements ports.CredentialStore.
type Store struct {
	secret     []byte
	tokenTTL   time.Duration
	iterations int
	now        func() time.Time
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(secret string, tokenTTL time.Duration, iterations int) *Store {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Store{secret: []byte(secret), tokenTTL: tokenTTL, iterations: iterations, now: time.Now}
}

// HashPassword derives a hex-encoded key from plaintext and a fresh salt.
func (s *Store) HashPassword(plaintext string) (string, []byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	return s.derive(plaintext, salt), salt, nil
}

func (s *Store) VerifyPassword(plaintext, hash string, salt []byte) bool {
	want := s.derive(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(want), []byte(hash)) == 1
}

func (s *Store) derive(plaintext string, salt []byte) string {
	key := pbkdf2.Key([]byte(plaintext), salt, s.iterations, keySize, sha512.New)
	return hex.EncodeToString(key)
}

// IssueToken signs a token for the account. sub is the account id.
func (s *Store) IssueToken(accountID int64, role domain.Role) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseToken validates a token issued by IssueToken and returns its caller.
func (s *Store) ParseToken(raw string) (domain.Caller, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return domain.Caller{}, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Caller{}, ErrInvalidToken
	}
	role, ok := domain.ParseRole(string(claims.Role))
	if !ok {
		return domain.Caller{}, ErrInvalidToken
	}
	return domain.Caller{AccountID: id, Role: role}, nil
}
