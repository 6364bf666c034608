package service

import (
	"errors"
	"fmt"
	"time"

	"iptv-storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const TokenTTL = 24 * time.Hour

type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements the single admin authentication strategy: bcrypt
// password verification plus a signed, time-limited session token. Sessions
// never live in process memory; each request is validated against the token
// it presents.
type AuthService interface {
	Login(username, password string) (string, error)
	VerifyToken(token string) (*AdminClaims, error)
}

type authServiceImpl struct {
	username     string
	passwordHash string
	secret       []byte
}

func NewAuthService(cfg *config.Admin) AuthService {
	return &authServiceImpl{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		secret:       []byte(cfg.Secret),
	}
}

func (s *authServiceImpl) Login(username, password string) (string, error) {
	if s.username == "" || s.passwordHash == "" {
		return "", fmt.Errorf("admin credentials not configured")
	}

	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &AdminClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}

	return token, nil
}

func (s *authServiceImpl) VerifyToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
