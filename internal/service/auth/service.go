package auth

import (
	"context"

	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/repository"
	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service is the auth gate: signup, credential checks, session tokens.
type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	tokens *auth.Manager
}

func NewService(repo repository.Repository, tokens *auth.Manager, log *zap.Logger) *Service {
	return &Service{
		log:    log.Named("auth"),
		repo:   repo,
		tokens: tokens,
	}
}

func (s *Service) SignUp(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "bcrypt")
	}
	if _, err := s.repo.CreateUser(ctx, username, string(hash)); err != nil {
		return err
	}
	return nil
}

// Login checks credentials and issues a session token. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errs.ErrInvalidCredentials
	}

	token, err := s.tokens.NewToken(user.ID, user.Username)
	if err != nil {
		s.log.Error("NewToken", zap.Error(err))
		return "", err
	}
	return token, nil
}
