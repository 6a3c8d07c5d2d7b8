package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
	"dailydiet/internal/session"
)

const bcryptCost = 10

// UserService registers and authenticates diary owners.
type UserService interface {
	Register(ctx context.Context, name, password, sessionID string) (*model.User, error)
	Authenticate(ctx context.Context, name, password string) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	newToken func() string
}

// NewUserService builds a UserService over a user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, newToken: session.NewToken}
}

// Register creates a user whose ID is the caller's current session token, or
// a fresh token when the caller has none. Reusing the session token links
// meals recorded anonymously under it to the new user.
func (s *userService) Register(ctx context.Context, name, password, sessionID string) (*model.User, error) {
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, errors.ErrUserAlreadyExists
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user name: %w", err)
	}

	if sessionID != "" {
		if _, err := s.repo.FindByID(ctx, sessionID); err == nil {
			return nil, errors.ErrSessionAlreadyExists
		} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check session id: %w", err)
		}
	} else {
		sessionID = s.newToken()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(prehash(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:       sessionID,
		Name:     name,
		Password: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// lost a race against a concurrent signup
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			if _, findErr := s.repo.FindByID(ctx, sessionID); findErr == nil {
				return nil, errors.ErrSessionAlreadyExists
			}
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user matching name and password. Unknown names and
// wrong passwords are indistinguishable.
func (s *userService) Authenticate(ctx context.Context, name, password string) (*model.User, error) {
	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), prehash(password)); err != nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// prehash reduces a password of any length to 44 bytes, under bcrypt's
// 72-byte input limit.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
