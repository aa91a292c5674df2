package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/lojinha/api/pkg/errors"

	"github.com/lojinha/api/internal/auth"
	"github.com/lojinha/api/internal/domain"
	"github.com/lojinha/api/internal/repository"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 6

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Name     string
	Age      int
	Email    string
	Password string
}

// UserEventPublisher publishes account lifecycle events.
type UserEventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
}

// UserService implements account registration and login.
type UserService struct {
	repo       repository.UserRepository
	jwtManager *auth.JWTManager
	producer   UserEventPublisher
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, jwtManager *auth.JWTManager, producer UserEventPublisher, logger *slog.Logger) *UserService {
	return &UserService{
		repo:       repo,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Age == 0 || input.Email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("Nome, idade, email e senha são obrigatórios")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput("A senha deve ter no mínimo 6 caracteres")
	}
	if !strings.Contains(input.Email, "@") || !strings.Contains(input.Email, ".") {
		return nil, apperrors.InvalidInput("Email inválido")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Age:          input.Age,
		Email:        input.Email,
		PasswordHash: string(hashed),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("Email já cadastrado")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish usuario.registrado event",
			slog.String("user_id", user.ID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.Hex()),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates by email and password and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.InvalidInput("Email e senha são obrigatórios!")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Unauthorized("Não Autorizado!")
		}
		return "", fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("Não Autorizado!")
	}

	token, err := s.jwtManager.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.Hex()),
	)

	return token, nil
}

// List returns every account. Password hashes never serialize (json:"-").
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
