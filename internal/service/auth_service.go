package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khangha1908/TodoX/internal/model"
	"github.com/khangha1908/TodoX/internal/repository"
)

// RegisterInput represents data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles registration, login and bearer tokens.
type AuthService struct {
	userRepo *repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates a user with a hashed password and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, "", ErrMissingFields
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		// A concurrent registration can slip past the existence check;
		// the unique indexes on email and username still catch it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrDuplicateUser
		}
		return nil, "", err
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// email and wrong password produce the same error so accounts cannot be probed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "", ErrInvalidCredentials
	case err != nil:
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResolveToken verifies a bearer token and loads the user it names.
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*model.User, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	rawID, ok := claims["userId"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, uint(rawID))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = user.ID
	claims["exp"] = time.Now().Add(s.tokenTTL).Unix()

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
