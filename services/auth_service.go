package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/stores"
	"github.com/princinho/taskbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error
}

// comparePassword is swapped out in tests to observe the unknown-user path.
var comparePassword = utils.CheckPassword

type AuthService struct {
	users      UserStore
	tokens     *TokenService
	bcryptCost int
	log        *slog.Logger

	// dummyHash is compared against when the username is unknown, so a
	// failed signin costs one bcrypt comparison either way.
	dummyHash string
}

func NewAuthService(users UserStore, tokens *TokenService, bcryptCost int, log *slog.Logger) *AuthService {
	dummyHash, err := utils.HashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		log.Warn("dummy password hash failed", "err", err)
	}

	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		dummyHash:  dummyHash,
	}
}

// SignUp registers a new user. The lookup catches the common case; the unique
// index on username catches two signups racing for the same name.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	username = utils.NormalizeUsername(username)

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, stores.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.log.InfoContext(ctx, "user signed up", "user_id", user.ID.Hex())
	return user, nil
}

// SignIn checks credentials and returns a fresh access and refresh token.
// The refresh token replaces any previously stored one.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	user, err := s.users.FindByUsername(ctx, utils.NormalizeUsername(username))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	if user == nil {
		_ = comparePassword(s.dummyHash, password)
		return "", "", ErrInvalidCredentials
	}

	if err := comparePassword(user.PasswordHash, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	userID := user.ID.Hex()

	accessToken, err = s.tokens.IssueAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return "", "", err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	return accessToken, refreshToken, nil
}

// RefreshAccess trades a valid refresh token for a new access token.
// Only the signature and expiry are checked; the refresh token stored on the
// user record is not consulted.
func (s *AuthService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.log.DebugContext(ctx, "refresh token rejected", "err", err)
		return "", err
	}

	return s.tokens.IssueAccessToken(claims.ID)
}
