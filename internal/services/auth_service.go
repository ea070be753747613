package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"barterhub/internal/config"
	"barterhub/internal/domain/user"
	"barterhub/internal/repository"
	barter_errors "barterhub/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWT.Secret),
		accessTTL: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	if in.Username == "" || len(in.Password) < 8 {
		return AuthResponse{}, barter_errors.ErrInvalidInput
	}
	if in.DisplayName == "" {
		in.DisplayName = in.Username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        toNullString(in.Email),
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(*newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return AuthResponse{}, barter_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}
	if !u.IsActive {
		return AuthResponse{}, barter_errors.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, barter_errors.ErrUnauthorized
	}
	return s.issueToken(u)
}

func (s *AuthService) issueToken(u user.User) (AuthResponse, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	info := UserInfo{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
	if u.Email.Valid {
		info.Email = u.Email.String
	}
	return AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        info,
	}, nil
}

// Profile returns the public view of a user account.
func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (UserInfo, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return UserInfo{}, err
	}
	if !u.IsActive {
		return UserInfo{}, barter_errors.ErrNotFound
	}
	return UserInfo{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, barter_errors.ErrUnauthorized
	}
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, barter_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, barter_errors.ErrUnauthorized
	}
	return claims, nil
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func toNullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
