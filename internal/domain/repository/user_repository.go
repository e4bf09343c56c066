package repository

import (
	"context"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios para el resolver
// de responsables. El orden de los resultados es el del store; entre usuarios
// igualmente calificados el desempate no está definido.
type UserRepository interface {
	// FindZoneResponsible devuelve el primer usuario con membresía en la zona
	// y rol responsable_zone o admin, o (nil, nil) si no hay ninguno.
	FindZoneResponsible(ctx context.Context, zoneID string) (*entity.User, error)
	// FindFirstAdmin devuelve el primer usuario con rol admin, o (nil, nil).
	FindFirstAdmin(ctx context.Context) (*entity.User, error)
}
