package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// TokenCodec turns a user into a signed HS256 JWT and back.
type TokenCodec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenCodec(key []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{key: key, ttl: ttl, now: time.Now}
}

func (c *TokenCodec) Sign(u *domain.User) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(u.ID, 10),
		"email":   u.Email,
		"name":    u.Name,
		"role":    string(u.Role),
		"created": u.CreatedAt.Unix(),
		"iat":     now.Unix(),
		"exp":     now.Add(c.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and rebuilds the user.
func (c *TokenCodec) Parse(raw string) (*domain.User, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, domain.ErrUnauthorized
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	created, _ := claims["created"].(float64)

	return &domain.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      domain.Role(role),
		CreatedAt: time.Unix(int64(created), 0).UTC(),
	}, nil
}

// TokenSlot is the slot a single HTTP exchange works with: it is loaded
// from the bearer token the client sent and, after a save, holds the token
// to hand back. The client is the actual storage.
type TokenSlot struct {
	codec *TokenCodec
	token string
}

func NewTokenSlot(codec *TokenCodec, token string) *TokenSlot {
	return &TokenSlot{codec: codec, token: token}
}

func (s *TokenSlot) Load(_ context.Context) (*Record, error) {
	if s.token == "" {
		return nil, nil
	}
	u, err := s.codec.Parse(s.token)
	if err != nil {
		return nil, ErrCorrupt
	}
	rec := NewRecord(u)
	rec.Token = s.token
	return rec, nil
}

func (s *TokenSlot) Save(_ context.Context, rec *Record) error {
	token, err := s.codec.Sign(rec.DomainUser())
	if err != nil {
		return err
	}
	s.token = token
	rec.Token = token
	return nil
}

func (s *TokenSlot) Clear(_ context.Context) error {
	s.token = ""
	return nil
}

// Token returns the current token, empty after Clear.
func (s *TokenSlot) Token() string {
	return s.token
}
