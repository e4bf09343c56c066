package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// FindZoneResponsible devuelve el primer usuario con membresía en la zona y
// rol responsable_zone o admin. (nil, nil) si no hay ninguno.
func (r *UserRepo) FindZoneResponsible(ctx context.Context, zoneID string) (*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role, u.created_at
		FROM users u JOIN user_zones uz ON uz.user_id = u.id
		WHERE uz.zone_id = $1 AND u.role IN ($2, $3)
		ORDER BY u.created_at LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, zoneID, entity.RoleResponsableZone, entity.RoleAdmin).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find zone responsible: %w", err)
	}
	return &u, nil
}

// FindFirstAdmin devuelve el primer usuario con rol admin. (nil, nil) si no hay.
func (r *UserRepo) FindFirstAdmin(ctx context.Context) (*entity.User, error) {
	query := `
		SELECT id, email, name, role, created_at
		FROM users WHERE role = $1
		ORDER BY created_at LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, entity.RoleAdmin).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &u, nil
}
