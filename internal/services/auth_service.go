package services

import (
	"errors"
	"strings"

	"streetsupply/internal/domain"
	"streetsupply/internal/repos"
	"streetsupply/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("an account with this email already exists")
	ErrUnknownRole = errors.New("role must be VENDOR or SUPPLIER")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates a vendor or supplier account and returns it.
func (s *AuthService) Register(email, name, password, role string) (*domain.User, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != domain.RoleVendor && role != domain.RoleSupplier {
		return nil, ErrUnknownRole
	}
	email, ok := validate.Email(email)
	if !ok {
		return nil, invalid("email", "enter a valid email")
	}
	if name, ok = validate.Name(name); !ok {
		return nil, invalid("name", "name is required")
	}
	if !validate.Password(password) {
		return nil, invalid("password", "use 8-20 characters with upper, lower, digit and symbol")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(hash), Role: role}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
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

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
