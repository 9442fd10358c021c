package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"decision-engine/internal/authz"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidRole        = errors.New("invalid role")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(authz.RoleUser),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id int64, role string) error {
	if _, ok := authz.ParseRole(role); !ok {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// Resolve implements authz.RoleResolver. A deactivated or unknown-role
// account resolves to guest, which the policy denies everywhere.
func (s *Service) Resolve(ctx context.Context, callerID int64) (authz.Role, error) {
	a, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		return "", err
	}
	if !a.IsActive {
		return authz.RoleGuest, nil
	}
	role, ok := authz.ParseRole(a.Role)
	if !ok {
		return authz.RoleGuest, nil
	}
	return role, nil
}
