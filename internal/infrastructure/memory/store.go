// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory).
//
// Las transacciones se serializan con un único mutex: Run trabaja sobre una copia de las
// tablas y solo la publica si fn termina sin error, así que un fallo a mitad no deja rastro.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type tables struct {
	users       map[string]*entity.User
	companies   map[string]*entity.Company
	links       map[string]*entity.CompanyUser // por company_id
	diagnostics map[string]*entity.Diagnostic  // por company_id
	projects    map[string]*entity.Project     // por company_id
	intakes     map[string]*entity.Intake      // por company_id
}

func newTables() *tables {
	return &tables{
		users:       map[string]*entity.User{},
		companies:   map[string]*entity.Company{},
		links:       map[string]*entity.CompanyUser{},
		diagnostics: map[string]*entity.Diagnostic{},
		projects:    map[string]*entity.Project{},
		intakes:     map[string]*entity.Intake{},
	}
}

// clone copia los mapas; las entidades son inmutables dentro del store (se guardan copias).
func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.companies {
		c.companies[k] = v
	}
	for k, v := range t.links {
		c.links[k] = v
	}
	for k, v := range t.diagnostics {
		c.diagnostics[k] = v
	}
	for k, v := range t.projects {
		c.projects[k] = v
	}
	for k, v := range t.intakes {
		c.intakes[k] = v
	}
	return c
}

// Store base de datos en memoria. El valor cero no sirve: usar NewStore.
type Store struct {
	mu sync.Mutex
	t  *tables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// Run ejecuta fn con repos atados a una copia de las tablas y la publica si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.t.clone()
	if err := fn(s.repos(work)); err != nil {
		return err
	}
	s.t = work
	return nil
}

// Repos devuelve los repositorios fuera de transacción (cada llamada es atómica por sí sola).
func (s *Store) Repos() ports.Repos {
	return s.repos(nil)
}

func (s *Store) repos(tx *tables) ports.Repos {
	h := handle{s: s, tx: tx}
	return ports.Repos{
		Companies:    &CompanyRepository{h},
		CompanyUsers: &CompanyUserRepository{h},
		Users:        &UserRepository{h},
		Diagnostics:  &DiagnosticRepository{h},
		Projects:     &ProjectRepository{h},
		Intakes:      &IntakeRepository{h},
	}
}

// handle resuelve sobre qué tablas opera un repositorio: las de la transacción en curso
// (ya protegidas por Run) o las publicadas, tomando el mutex.
type handle struct {
	s  *Store
	tx *tables
}

func (h handle) read(fn func(t *tables)) {
	if h.tx != nil {
		fn(h.tx)
		return
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	fn(h.s.t)
}

func (h handle) write(fn func(t *tables) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return fn(h.s.t)
}

// ── copias ────────────────────────────────────────────────────────────────────

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyCompany(v *entity.Company) *entity.Company {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyLink(v *entity.CompanyUser) *entity.CompanyUser {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyDiagnostic(v *entity.Diagnostic) *entity.Diagnostic {
	if v == nil {
		return nil
	}
	c := *v
	if v.DecidedAt != nil {
		t := *v.DecidedAt
		c.DecidedAt = &t
	}
	return &c
}

func copyProject(v *entity.Project) *entity.Project {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyIntake(v *entity.Intake) *entity.Intake {
	if v == nil {
		return nil
	}
	c := *v
	c.DataTypes = append([]string{}, v.DataTypes...)
	c.MainInterests = append([]string{}, v.MainInterests...)
	if v.SubmittedAt != nil {
		t := *v.SubmittedAt
		c.SubmittedAt = &t
	}
	return &c
}
