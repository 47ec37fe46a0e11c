package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

const uniqueViolation = "23505"

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, sessionTTL time.Duration) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// Signup creates an account with a bcrypt-hashed password. A duplicate email
// surfaces as ErrEmailAlreadyRegistered; uniqueness is enforced by the
// database, not checked first.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	u := &model.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.UserID, u.Email, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
