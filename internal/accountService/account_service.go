package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenIssuer       = "auction-house"
	BcryptCost        = 10
	MaxUsernameLength = 150
	MinSecretBytes    = 32
)

// RegisterInput carries the registration form
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
	FirstName    string
	LastName     string
}

// AccountService owns credentials and login sessions
type AccountService struct {
	repo   repository.AccountDB
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	compare func(hash, password []byte) error

	// hashed once and checked on logins for unknown usernames so they cost as much as a wrong password
	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService. secret signs the session tokens.
func NewAccountService(repo repository.AccountDB, secret []byte, ttl time.Duration) *AccountService {
	return &AccountService{
		repo:    repo,
		secret:  secret,
		ttl:     ttl,
		cost:    BcryptCost,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		compare: bcrypt.CompareHashAndPassword,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AccountService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("service: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AccountService) VerifyPassword(password, hash string) bool {
	return s.compare([]byte(hash), []byte(password)) == nil
}

func (s *AccountService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(utils.GenerateID()), s.cost)
		if err != nil {
			utils.Error("AccountService: failed to hash placeholder password", map[string]any{"error": err.Error()})
			return
		}
		s.dummyHash = string(hash)
	})
	return s.dummyHash
}

// Register creates a new account
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	switch {
	case username == "":
		return models.User{}, fmt.Errorf("service: %w - username is required", auctionerrors.ErrInvalidUser)
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return models.User{}, fmt.Errorf("service: %w - username longer than %d characters", auctionerrors.ErrInvalidUser, MaxUsernameLength)
	case input.Password == "":
		return models.User{}, fmt.Errorf("service: %w - password is required", auctionerrors.ErrInvalidUser)
	case len(input.Password) > 72:
		// bcrypt only looks at the first 72 bytes
		return models.User{}, fmt.Errorf("service: %w - password longer than 72 bytes", auctionerrors.ErrInvalidUser)
	case input.Password != input.Confirmation:
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrPasswordMismatch)
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		UserID:       utils.NewULID(),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register %s: %w", username, err)
	}
	return user, nil
}

// Login checks credentials and opens a session. Unknown users and wrong passwords fail alike.
func (s *AccountService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, auctionerrors.ErrUserNotFound) {
		s.VerifyPassword(password, s.unknownUserHash())
		return models.User{}, "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("service: failed to load user: %w", err)
	}
	if !s.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	token, err := s.StartSession(ctx, user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// StartSession stores a session for the user and returns the signed token naming it
func (s *AccountService) StartSession(ctx context.Context, user models.User) (string, error) {
	now := s.now()
	session := models.Session{
		SessionID: utils.GenerateID(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("service: failed to create session for %s: %w", user.Username, err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.SessionID,
		Subject:   user.UserID,
		Issuer:    TokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("service: failed to sign session token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a session token to its user. Revoked or expired sessions are rejected.
func (s *AccountService) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := s.parseToken(token, true)
	if err != nil {
		return models.User{}, err
	}

	session, err := s.repo.GetSession(ctx, claims.ID)
	if errors.Is(err, auctionerrors.ErrSessionNotFound) {
		return models.User{}, fmt.Errorf("service: %w - unknown session", auctionerrors.ErrInvalidSession)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to load session: %w", err)
	}
	if !session.Active(s.now()) || session.UserID != claims.Subject {
		return models.User{}, fmt.Errorf("service: %w - session ended", auctionerrors.ErrInvalidSession)
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if errors.Is(err, auctionerrors.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("service: %w - user no longer exists", auctionerrors.ErrInvalidSession)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to load session user: %w", err)
	}
	return user, nil
}

// Logout revokes the session named by the token. An expired token still revokes its session.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token, false)
	if err != nil {
		return err
	}
	if err := s.repo.RevokeSession(ctx, claims.ID); err != nil {
		return fmt.Errorf("service: failed to revoke session: %w", err)
	}
	return nil
}

func (s *AccountService) parseToken(token string, checkExpiry bool) (*jwt.RegisteredClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("service: %w - empty token", auctionerrors.ErrInvalidSession)
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(TokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("service: %w: %v", auctionerrors.ErrInvalidSession, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("service: %w - token names no session", auctionerrors.ErrInvalidSession)
	}
	return claims, nil
}

// SessionTTL is how long a login lasts
func (s *AccountService) SessionTTL() time.Duration {
	return s.ttl
}

// ListUsers returns every account
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}
