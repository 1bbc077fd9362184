package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/jhoicas/espacio-datos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/espacio-datos-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, repository.UserRepository) {
	t.Helper()
	users := memory.NewStore().Repos().Users
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}), users
}

func addUser(t *testing.T, users repository.UserRepository, id, email, password string, role entity.Role) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: id, Email: email, PasswordHash: hash, Name: email, Role: role, CreatedAt: time.Now(),
	}))
}

func TestPassword_HashYComprobacion(t *testing.T) {
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	assert.NotEqual(t, "secreto123", hash)
	assert.True(t, auth.CheckPassword(hash, "secreto123"))
	assert.False(t, auth.CheckPassword(hash, "otro"))
	assert.False(t, auth.CheckPassword("no-es-bcrypt", "secreto123"))
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, users := newAuth(t)
	addUser(t, users, "u1", "asesor@espaciodatos.com", "asesor123", entity.RoleAsesor)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  Asesor@EspacioDatos.com ", Password: "asesor123"})
	require.NoError(t, err)

	require.NotNil(t, out.User.Role)
	assert.Equal(t, "asesor", *out.User.Role)
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "asesor", claims.Role)
}

func TestLogin_UsuarioSinRolPuedeEntrar(t *testing.T) {
	uc, users := newAuth(t)
	addUser(t, users, "u2", "pendiente@espaciodatos.com", "pendiente123", entity.RoleUnassigned)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "pendiente@espaciodatos.com", Password: "pendiente123"})
	require.NoError(t, err)
	assert.Nil(t, out.User.Role)
}

func TestLogin_MismoErrorParaEmailYPassword(t *testing.T) {
	uc, users := newAuth(t)
	addUser(t, users, "u1", "asesor@espaciodatos.com", "asesor123", entity.RoleAsesor)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "asesor@espaciodatos.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@espaciodatos.com", Password: "asesor123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveIdentity_RolVigente(t *testing.T) {
	uc, users := newAuth(t)
	addUser(t, users, "u1", "a@test", "password1", entity.RoleCliente)

	id, err := uc.ResolveIdentity(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCliente, id.Role)

	// El admin retira el rol: la siguiente resolución lo refleja.
	u, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	u.Role = entity.RoleUnassigned
	require.NoError(t, users.Update(context.Background(), u))

	id, err = uc.ResolveIdentity(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, id.Role.Assigned())

	_, err = uc.ResolveIdentity(context.Background(), "borrado")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestMe(t *testing.T) {
	uc, users := newAuth(t)
	addUser(t, users, "u1", "a@test", "password1", entity.RoleAdmin)

	me, err := uc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@test", me.Email)

	_, err = uc.Me(context.Background(), "otro")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
