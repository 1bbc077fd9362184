package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct{ h handle }

var _ repository.UserRepository = (*UserRepository)(nil)

// Create inserta un usuario. domain.ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.h.write(func(t *tables) error {
		for _, other := range t.users {
			if other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := t.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		t.users[u.ID] = copyUser(u)
		return nil
	})
}

// GetByID devuelve el usuario o (nil, nil).
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.h.read(func(t *tables) { out = copyUser(t.users[id]) })
	return out, nil
}

// GetByEmail devuelve el usuario o (nil, nil).
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.h.read(func(t *tables) {
		for _, u := range t.users {
			if u.Email == email {
				out = copyUser(u)
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza el usuario. domain.ErrUserNotFound si no existe.
func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		t.users[u.ID] = copyUser(u)
		return nil
	})
}

// List devuelve los usuarios ordenados por fecha de alta.
func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.h.read(func(t *tables) {
		for _, u := range t.users {
			out = append(out, copyUser(u))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete elimina el usuario y su vínculo con empresa.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(t.users, id)
		for companyID, l := range t.links {
			if l.UserID == id {
				delete(t.links, companyID)
			}
		}
		return nil
	})
}

// CountByRole devuelve el número de usuarios por rol (RoleUnassigned incluido).
func (r *UserRepository) CountByRole(_ context.Context) (map[entity.Role]int, error) {
	out := map[entity.Role]int{}
	r.h.read(func(t *tables) {
		for _, u := range t.users {
			out[u.Role]++
		}
	})
	return out, nil
}
