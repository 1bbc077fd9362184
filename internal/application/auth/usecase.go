package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/jhoicas/espacio-datos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, perfil y resolución de identidad.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Un usuario sin rol también puede iniciar sesión: el acceso se le niega después, en cada acción.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	// Mismo error para email desconocido y password incorrecta.
	if user == nil || !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.UserToResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.UserToResponse(user), nil
}

// ResolveIdentity construye la identidad con el rol vigente en base de datos, no el del token:
// un cambio de rol hecho por el admin aplica en la siguiente petición.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, userID string) (access.Identity, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return access.Identity{}, err
	}
	if user == nil {
		return access.Identity{}, domain.ErrUnauthenticated
	}
	return access.Identity{UserID: user.ID, Role: user.Role}, nil
}
