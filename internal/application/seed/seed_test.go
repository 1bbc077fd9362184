package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/application/seed"
	"github.com/jhoicas/espacio-datos-api/internal/bootstrap"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/pkg/config"
)

func newSeeder(t *testing.T) (*seed.Seeder, *bootstrap.Storage) {
	t.Helper()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", Expiration: 60, Issuer: "test"}}
	st := bootstrap.MemoryStorage()
	c := bootstrap.NewContainer(cfg, st, zerolog.Nop())
	return c.NewSeeder(st, zerolog.Nop()), st
}

func TestLoad_FixtureEmbebido(t *testing.T) {
	f, err := seed.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Users)
	assert.Len(t, f.Companies, 3)
}

func TestParse_YAMLInvalido(t *testing.T) {
	_, err := seed.Parse([]byte("users: [:"))
	assert.Error(t, err)
}

func TestApply_CicloDeVidaDemo(t *testing.T) {
	s, st := newSeeder(t)
	ctx := context.Background()
	f, err := seed.Load("")
	require.NoError(t, err)

	res, err := s.Apply(ctx, f)
	require.NoError(t, err)
	assert.Contains(t, res.Users, "admin@espaciodatos.com")
	assert.ElementsMatch(t, []string{"B50123456", "A46234567", "B48345678"}, res.Companies)

	// Usuario sin rol.
	u, err := st.Repos.Users.GetByEmail(ctx, "pendiente@espaciodatos.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.False(t, u.Role.Assigned())

	tests := []struct {
		nif          string
		status       string
		intakeStatus string
		project      bool
	}{
		{"B50123456", entity.CompanyStatusLead, entity.IntakeStatusRecibida, false},
		{"A46234567", entity.CompanyStatusApta, entity.IntakeStatusPendiente, true},
		{"B48345678", entity.CompanyStatusDescartada, entity.IntakeStatusPendiente, false},
	}
	for _, tt := range tests {
		t.Run(tt.nif, func(t *testing.T) {
			c, err := st.Repos.Companies.GetByNIF(ctx, tt.nif)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, tt.status, c.Status)
			assert.Equal(t, tt.intakeStatus, c.IntakeStatus)

			p, err := st.Repos.Projects.GetByCompany(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.project, p != nil)

			link, err := st.Repos.CompanyUsers.GetByCompany(ctx, c.ID)
			require.NoError(t, err)
			assert.NotNil(t, link, "cada empresa demo tiene su cliente")
		})
	}

	c, err := st.Repos.Companies.GetByNIF(ctx, "A46234567")
	require.NoError(t, err)
	p, err := st.Repos.Projects.GetByCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IncorporationEnProgreso, p.IncorporationStatus)
	assert.Equal(t, entity.ProjectPhaseIncorporacion, p.Phase)
	assert.True(t, p.Checklist.EspacioSeleccionado)
}

func TestApply_Idempotente(t *testing.T) {
	s, _ := newSeeder(t)
	ctx := context.Background()
	f, err := seed.Load("")
	require.NoError(t, err)

	_, err = s.Apply(ctx, f)
	require.NoError(t, err)

	res, err := s.Apply(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.Empty(t, res.Companies)
}

func TestApply_RolDesconocido(t *testing.T) {
	s, _ := newSeeder(t)
	f, err := seed.Parse([]byte("users:\n  - email: x@test.es\n    password: secreto1\n    role: jefe\n"))
	require.NoError(t, err)

	_, err = s.Apply(context.Background(), f)
	assert.Error(t, err)
}
