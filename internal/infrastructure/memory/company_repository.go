package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/jhoicas/espacio-datos-api/pkg/textnorm"
)

// CompanyRepository implementa repository.CompanyRepository en memoria.
type CompanyRepository struct{ h handle }

var _ repository.CompanyRepository = (*CompanyRepository)(nil)

// Create inserta una empresa. domain.ErrDuplicate si el ID o el NIF ya existen.
func (r *CompanyRepository) Create(_ context.Context, c *entity.Company) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range t.companies {
			if other.NIF == c.NIF {
				return domain.ErrDuplicate
			}
		}
		t.companies[c.ID] = copyCompany(c)
		return nil
	})
}

// GetByID devuelve la empresa o (nil, nil).
func (r *CompanyRepository) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	r.h.read(func(t *tables) { out = copyCompany(t.companies[id]) })
	return out, nil
}

// GetByIDForUpdate equivale a GetByID: Run ya serializa las transacciones.
func (r *CompanyRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

// GetByNIF devuelve la empresa con ese NIF o (nil, nil).
func (r *CompanyRepository) GetByNIF(_ context.Context, nif string) (*entity.Company, error) {
	var out *entity.Company
	r.h.read(func(t *tables) {
		for _, c := range t.companies {
			if c.NIF == nif {
				out = copyCompany(c)
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza la empresa. domain.ErrNotFound si no existe.
func (r *CompanyRepository) Update(_ context.Context, c *entity.Company) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.companies[c.ID]; !ok {
			return domain.ErrNotFound
		}
		t.companies[c.ID] = copyCompany(c)
		return nil
	})
}

// List filtra por estado y texto (sin tildes ni mayúsculas), más recientes primero.
func (r *CompanyRepository) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	var out []*entity.Company
	r.h.read(func(t *tables) {
		for _, c := range t.companies {
			if f.Status != "" && c.Status != f.Status {
				continue
			}
			if !textnorm.Contains(f.Search, c.Name, c.NIF, c.ContactName, c.Sector) {
				continue
			}
			out = append(out, copyCompany(c))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Offset >= len(out) {
		return []*entity.Company{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

// CountByStatus devuelve el número de empresas por estado.
func (r *CompanyRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	r.h.read(func(t *tables) {
		for _, c := range t.companies {
			out[c.Status]++
		}
	})
	return out, nil
}

// CountIntakeReceived cuenta empresas con el cuestionario recibido.
func (r *CompanyRepository) CountIntakeReceived(_ context.Context) (int, error) {
	n := 0
	r.h.read(func(t *tables) {
		for _, c := range t.companies {
			if c.IntakeStatus == entity.IntakeStatusRecibida {
				n++
			}
		}
	})
	return n, nil
}

// CompanyUserRepository implementa repository.CompanyUserRepository en memoria.
type CompanyUserRepository struct{ h handle }

var _ repository.CompanyUserRepository = (*CompanyUserRepository)(nil)

// Create vincula empresa y usuario. domain.ErrDuplicate si alguno ya está vinculado.
func (r *CompanyUserRepository) Create(_ context.Context, l *entity.CompanyUser) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.links[l.CompanyID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range t.links {
			if other.UserID == l.UserID {
				return domain.ErrDuplicate
			}
		}
		t.links[l.CompanyID] = copyLink(l)
		return nil
	})
}

// GetByCompany devuelve el vínculo de la empresa o (nil, nil).
func (r *CompanyUserRepository) GetByCompany(_ context.Context, companyID string) (*entity.CompanyUser, error) {
	var out *entity.CompanyUser
	r.h.read(func(t *tables) { out = copyLink(t.links[companyID]) })
	return out, nil
}

// GetByUser devuelve el vínculo del usuario o (nil, nil).
func (r *CompanyUserRepository) GetByUser(_ context.Context, userID string) (*entity.CompanyUser, error) {
	var out *entity.CompanyUser
	r.h.read(func(t *tables) {
		for _, l := range t.links {
			if l.UserID == userID {
				out = copyLink(l)
				return
			}
		}
	})
	return out, nil
}
