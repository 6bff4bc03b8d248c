// Package services holds the business rules. Services depend on small
// store interfaces rather than concrete repositories, so tests can swap
// in fakes.
package services

import (
	"errors"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/app/requests"
	"github.com/product-catalog/api/pkg/auth"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	EmailTaken(email string) (bool, error)
	Create(user *models.User) error
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses never reveal which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken means the registration email already has an account.
	ErrEmailTaken = errors.New("email already taken")

	// ErrTokenIssue means the user checks passed but signing the access
	// token failed.
	ErrTokenIssue = errors.New("could not issue access token")
)

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates the user account and signs their first access token.
// The password is bcrypt-hashed before it touches the store. Note the
// user row is not rolled back when token issuance fails; the client can
// log in normally afterwards.
func (s *AuthService) Register(req requests.RegisterRequest) (*models.User, string, error) {
	taken, err := s.users.EmailTaken(req.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := auth.Issue(user.ID)
	if err != nil {
		return user, "", ErrTokenIssue
	}
	return user, token, nil
}

// Login verifies the credentials and returns a fresh access token.
func (s *AuthService) Login(req requests.LoginRequest) (string, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.Issue(user.ID)
	if err != nil {
		return "", ErrTokenIssue
	}
	return token, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *AuthService) Logout(token string) error {
	return auth.Revoke(token)
}

// Refresh rotates the presented token: the old one is revoked and a new
// one issued for the same user. A token that fails validation is left
// untouched.
func (s *AuthService) Refresh(token string) (string, error) {
	return auth.Refresh(token)
}

// Me returns the authenticated user's profile, or nil when the account
// no longer exists.
func (s *AuthService) Me(userID uint) (*models.User, error) {
	return s.users.FindByID(userID)
}
