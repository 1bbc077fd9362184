package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UserUseCase gestión de usuarios por parte del administrador.
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create crea un usuario con rol opcional. domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *UserUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionManageUsers); err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserToResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, id access.Identity) ([]dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionManageUsers); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.UserToResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id access.Identity, userID string) (*dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionManageUsers); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.UserToResponse(user), nil
}

// Update cambia nombre y/o rol. Role = "" deja la cuenta sin rol.
func (uc *UserUseCase) Update(ctx context.Context, id access.Identity, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionManageUsers); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	from := user.Role
	if in.Role != nil {
		role, ok := entity.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		user.Role = role
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if user.Role != from {
		uc.log.Info().
			Str("target_user_id", user.ID).
			Str("user_id", id.UserID).
			Str("from", string(from)).
			Str("to", string(user.Role)).
			Msg("rol de usuario actualizado")
	}
	return dto.UserToResponse(user), nil
}

// Delete elimina un usuario (y su vínculo con empresa, si lo tiene).
// Un administrador no puede eliminar su propia cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, id access.Identity, userID string) error {
	if err := access.Authorize(id, access.ActionManageUsers); err != nil {
		return err
	}
	if userID == id.UserID {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrSelfDelete)
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, userID)
}
