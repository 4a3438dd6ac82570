package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"julex/internal/domain"
	"julex/internal/repos"
	"julex/internal/validate"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrAuthRequired = errors.New("authentication required")
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

type Registration struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates a customer account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, in Registration) (*domain.User, string, error) {
	verr := &domain.ValidationError{}
	email, ok := validate.Email(in.Email)
	if !ok {
		verr.Add("email", "must be a valid email")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		verr.Add("name", "is required (max 60 characters)")
	}
	if !validate.Password(in.Password) {
		verr.Add("password", "needs 8-64 characters with upper, lower, digit and symbol")
	}
	if len(verr.Fields) > 0 {
		return nil, "", verr
	}
	taken, err := s.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", domain.Invalid("email", "is already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID: uuid.NewString(), Email: email, Name: name, Hash: string(hash),
		Role: domain.RoleCustomer, CreatedAt: stamp(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	sid := uuid.NewString()
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, "", err
	}
	return u, sid, nil
}

// Login checks the password and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrBadCreds
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	sid := uuid.NewString()
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, "", err
	}
	return u, sid, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

// CurrentUser resolves a session token. An unknown token yields ErrNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, domain.NotFound("session", "")
	}
	return s.Users.SessionUser(ctx, sid)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *AuthService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if actor != nil && actor.ID == userID {
		return domain.Invalid("id", "cannot delete your own account")
	}
	return s.Users.DeleteUserCascade(ctx, userID)
}
