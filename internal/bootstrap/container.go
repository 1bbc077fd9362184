// Package bootstrap arma los casos de uso sobre un almacenamiento concreto
// (PostgreSQL o memoria). Lo comparten el servidor, el comando de seed y los tests HTTP.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/espacio-datos-api/internal/application/analytics"
	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/crm"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/application/report"
	"github.com/jhoicas/espacio-datos-api/internal/application/seed"
	"github.com/jhoicas/espacio-datos-api/internal/application/usecase"
	"github.com/jhoicas/espacio-datos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/espacio-datos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/espacio-datos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/espacio-datos-api/internal/interfaces/http"
	"github.com/jhoicas/espacio-datos-api/pkg/config"
)

// Storage repositorios de lectura más el ejecutor de transacciones.
type Storage struct {
	Repos    ports.Repos
	TxRunner ports.TxRunner
	close    func()
}

// Close libera el pool si lo hay.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// MemoryStorage almacenamiento en memoria (demo y tests).
func MemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{Repos: store.Repos(), TxRunner: store}
}

// PostgresStorage abre el pool y, si autoMigrate, aplica las migraciones goose.
func PostgresStorage(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Storage, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return postgresStorage(pool), nil
}

func postgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Repos:    postgres.NewRepos(pool),
		TxRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}

// OpenStorage elige el driver según la configuración.
func OpenStorage(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Storage, error) {
	if cfg.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return MemoryStorage(), nil
	}
	return PostgresStorage(ctx, cfg, log)
}

// Container casos de uso listos para usar.
type Container struct {
	Auth        *auth.AuthUseCase
	Users       *usecase.UserUseCase
	Companies   *usecase.CompanyUseCase
	Diagnostics *crm.DiagnosticUseCase
	Projects    *crm.ProjectUseCase
	Intakes     *crm.IntakeUseCase
	Dashboard   *analytics.DashboardUseCase
	Reports     *report.ReportUseCase

	jwtSecret string
}

// NewContainer construye todos los casos de uso sobre st.
func NewContainer(cfg *config.Config, st *Storage, log zerolog.Logger) *Container {
	r := st.Repos
	return &Container{
		Auth: auth.NewAuthUseCase(r.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Users:       usecase.NewUserUseCase(r.Users, log),
		Companies:   usecase.NewCompanyUseCase(st.TxRunner, r.Companies, r.CompanyUsers, r.Users, log),
		Diagnostics: crm.NewDiagnosticUseCase(st.TxRunner, r.Diagnostics, r.CompanyUsers, log),
		Projects: crm.NewProjectUseCase(st.TxRunner, r.Projects, r.CompanyUsers,
			crm.ProjectOptions{RequireChecklist: cfg.CRM.RequireChecklist}, log),
		Intakes: crm.NewIntakeUseCase(st.TxRunner, r.Intakes, r.CompanyUsers),
		Dashboard: analytics.NewDashboardUseCase(analytics.DashboardRepos{
			Companies:    r.Companies,
			CompanyUsers: r.CompanyUsers,
			Users:        r.Users,
			Diagnostics:  r.Diagnostics,
			Projects:     r.Projects,
			Intakes:      r.Intakes,
		}),
		Reports:   report.NewReportUseCase(r.Companies, r.Diagnostics, r.Projects, infrapdf.NewMarotoPDFGenerator()),
		jwtSecret: cfg.JWT.Secret,
	}
}

// NewSeeder seeder sobre los casos de uso del contenedor.
func (c *Container) NewSeeder(st *Storage, log zerolog.Logger) *seed.Seeder {
	return seed.NewSeeder(st.Repos.Users, st.Repos.Companies, c.Companies, c.Diagnostics, c.Projects, c.Intakes, log)
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:       c.Auth,
		UserUC:       c.Users,
		CompanyUC:    c.Companies,
		DiagnosticUC: c.Diagnostics,
		ProjectUC:    c.Projects,
		IntakeUC:     c.Intakes,
		DashboardUC:  c.Dashboard,
		ReportUC:     c.Reports,
		JWTSecret:    c.jwtSecret,
	}
}
