package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"nutriplan/models"
	"nutriplan/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const MinPasswordLength = 8

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	verr := &utils.ValidationError{}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "must be a valid email address")
	}
	if len(req.Password) < MinPasswordLength {
		verr.Add("password", "must be at least %d characters", MinPasswordLength)
	}
	if name == "" {
		verr.Add("name", "name is required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	switch _, err := s.users.FindUserByEmail(ctx, email); {
	case err == nil:
		verr.Add("email", "is already registered")
		return nil, verr
	case !errors.Is(err, utils.ErrNotFound):
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, Password: hash, Name: name}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, utils.ErrDuplicate) {
			verr.Add("email", "is already registered")
			return nil, verr
		}
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, utils.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}
