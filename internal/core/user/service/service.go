package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userEntity "bloghub/internal/core/user"
	userPort "bloghub/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	tokenIssuer = "bloghub"
	// loginDisplayName نامی که هنگام ورود (بدون ثبت‌نام) به کاربر داده می‌شود
	loginDisplayName = "User"
)

// userNamespace is the UUID v5 namespace for ids derived from emails.
var userNamespace = uuid.Must(uuid.FromString("8f0c2e5e-5b7a-4f0e-9a57-6f1d3b1c2a90"))

// identityClaims هویت کاربر داخل توکن JWT
type identityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// UserService سرویس هویت ماک: هیچ رمزی بررسی نمی‌شود
type UserService struct {
	jwtKey     []byte
	tokenTTL   time.Duration
	adminEmail string
	now        func() time.Time
	logger     *zap.Logger
}

func NewUserService(jwtKey []byte, tokenTTL time.Duration, adminEmail string, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		jwtKey:     jwtKey,
		tokenTTL:   tokenTTL,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		now:        time.Now,
		logger:     logger,
	}
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	identity, err := s.identityFor(email, loginDisplayName)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed in", zap.String("userID", identity.ID), zap.Bool("isAdmin", identity.IsAdmin))
	return s.issue(identity)
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*userPort.LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, userPort.ErrInvalidCredentials
	}
	identity, err := s.identityFor(email, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", zap.String("userID", identity.ID), zap.Bool("isAdmin", identity.IsAdmin))
	return s.issue(identity)
}

// ParseToken اعتبارسنجی توکن و استخراج هویت
func (s *UserService) ParseToken(tokenString string) (userEntity.Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return userEntity.Identity{}, errors.Join(userPort.ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Issuer != tokenIssuer {
		return userEntity.Identity{}, userPort.ErrInvalidToken
	}
	return userEntity.Identity{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

func (s *UserService) identityFor(email, name string) (userEntity.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return userEntity.Identity{}, userPort.ErrInvalidCredentials
	}
	return userEntity.Identity{
		ID:      uuid.NewV5(userNamespace, email).String(),
		Name:    name,
		Email:   email,
		IsAdmin: s.adminEmail != "" && email == s.adminEmail,
	}, nil
}

// issue برای تولید توکن JWT
func (s *UserService) issue(identity userEntity.Identity) (*userPort.LoginResponse, error) {
	expiresAt := s.now().Add(s.tokenTTL).Unix()
	claims := &identityClaims{
		Name:    identity.Name,
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expiresAt,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		s.logger.Error("could not sign token", zap.Error(err))
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userPort.ToDTO(identity),
	}, nil
}
