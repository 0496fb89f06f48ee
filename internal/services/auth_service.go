package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/internal/models"
	repository "task-board.com/task-board/internal/repositories"
	"task-board.com/task-board/internal/session"
)

const tokenIssuer = "task-board"

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type AuthOptions struct {
	Secret       string
	TokenTTL     time.Duration
	Email        string
	Password     string
	PasswordHash string
	MagicLinkTTL time.Duration
	PublicURL    string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

type MagicLinkResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthService struct {
	store       *repository.Store
	revocations session.RevocationList
	opts        AuthOptions
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	store *repository.Store,
	revocations session.RevocationList,
	opts AuthOptions,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		store:       store,
		revocations: revocations,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

// Login checks the configured credential and returns a signed token for the
// matching user, creating the user on first login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email != normalizeEmail(s.opts.Email) || !s.passwordMatches(password) {
		s.logger.Warn("login rejected", zap.String("email", email))
		return nil, apperrors.ErrInvalidCredentials
	}

	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users().FindOrCreate(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) passwordMatches(password string) bool {
	if s.opts.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.opts.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.opts.Password), []byte(password)) == 1
}

func (s *AuthService) issue(user *model.User) (*LoginResult, error) {
	now := s.now()
	expiresAt := now.Add(s.opts.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte(s.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// Verify parses a bearer token and rejects it when the signature, expiry or
// revocation status says so.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrUnauthenticated
	}

	until := s.now().Add(s.opts.TokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revocations.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.Subject))
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users().FindByID(ctx, userID)
		if err != nil {
			return orNotFound(err, apperrors.ErrUserNotFound)
		}

		fields := map[string]interface{}{}
		if in.Name != nil {
			fields["name"] = *in.Name
		}
		if in.Email != nil {
			email := normalizeEmail(*in.Email)
			if email != user.Email {
				other, err := tx.Users().FindByEmail(ctx, email)
				if err == nil && other.ID != user.ID {
					return apperrors.ErrEmailTaken
				}
				if err != nil && !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				fields["email"] = email
			}
		}
		if len(fields) > 0 {
			if err := tx.Users().Update(ctx, userID, fields); err != nil {
				return orNotFound(err, apperrors.ErrUserNotFound)
			}
		}

		user, err = tx.Users().FindByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequestMagicLink stores a one-time login link for an existing user and
// returns it; delivering it is left to the caller. It returns a nil result,
// without error, for unknown addresses and for the configured credential's
// address, which can only sign in with its password.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) (*MagicLinkResult, error) {
	email = normalizeEmail(email)
	if email == normalizeEmail(s.opts.Email) {
		s.logger.Warn("magic link refused for password account")
		return nil, nil
	}

	if _, err := s.store.Users().FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("magic link requested for unknown email")
			return nil, nil
		}
		return nil, err
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now().UTC()
	link := &model.MagicLink{
		ID:        uuid.NewString(),
		Token:     token,
		Email:     email,
		ExpiresAt: now.Add(s.opts.MagicLinkTTL),
		CreatedAt: now,
	}
	if err := s.store.MagicLinks().Create(ctx, link); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/auth/magic-link/verify?token=%s", strings.TrimRight(s.opts.PublicURL, "/"), token)
	return &MagicLinkResult{URL: url, ExpiresAt: link.ExpiresAt}, nil
}

// ConsumeMagicLink exchanges an unused, unexpired link for a session token.
func (s *AuthService) ConsumeMagicLink(ctx context.Context, token string) (*LoginResult, error) {
	var user *model.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		link, err := tx.MagicLinks().FindByToken(ctx, token)
		if err != nil {
			return orNotFound(err, apperrors.ErrMagicLinkInvalid)
		}

		now := s.now().UTC()
		if link.UsedAt != nil || link.Expired(now) {
			return apperrors.ErrMagicLinkInvalid
		}

		if link.Email == normalizeEmail(s.opts.Email) {
			return apperrors.ErrMagicLinkInvalid
		}
		user, err = tx.Users().FindByEmail(ctx, link.Email)
		if err != nil {
			return orNotFound(err, apperrors.ErrMagicLinkInvalid)
		}

		err = tx.MagicLinks().MarkUsed(ctx, link.ID, user.ID, now)
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return apperrors.ErrMagicLinkInvalid
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
