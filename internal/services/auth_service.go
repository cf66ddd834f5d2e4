package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"farmtech/internal/domain"
	"farmtech/internal/repos"
	"farmtech/internal/validate"
)

var (
	ErrBadCreds  = errors.New("invalid email or password")
	ErrDuplicate = errors.New("username or email already taken")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Signup creates an account; it does not sign the user in.
func (s *AuthService) Signup(username, email, password string) (*domain.User, error) {
	name, ok := validate.Username(username)
	if !ok {
		return nil, &validate.Error{Field: "username", Msg: "must be 3 to 20 letters, digits or ._-"}
	}
	mail, ok := validate.Email(email)
	if !ok {
		return nil, &validate.Error{Field: "email", Msg: "is not a valid address"}
	}
	if !validate.Password(password) {
		return nil, &validate.Error{Field: "password", Msg: "needs 8 to 20 characters with upper, lower, digit and symbol"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Username: name, Email: strings.ToLower(mail), Hash: string(hash)}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Signin(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Signout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
