package alerting

import (
	"context"

	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

// ResponsibleResolver decide qué usuario debe ser dueño de una alerta nueva.
// Precedencia (gana la primera que aplique):
//  1. userID explícito del caller
//  2. un usuario con membresía en la zona y rol responsable_zone o admin
//  3. cualquier admin
//  4. nadie (la alerta se persiste igualmente, sin dueño)
//
// Entre usuarios igualmente calificados el desempate es el orden del store.
type ResponsibleResolver struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewResponsibleResolver construye el resolver.
func NewResponsibleResolver(users repository.UserRepository, log *logger.Logger) *ResponsibleResolver {
	return &ResponsibleResolver{users: users, log: log}
}

// Resolve devuelve el ID del responsable o nil si no hay candidato.
// Los errores de consulta degradan al siguiente nivel de precedencia: una
// alerta sin dueño es un resultado válido aunque degradado.
func (r *ResponsibleResolver) Resolve(ctx context.Context, explicitUserID, zoneID *string) *string {
	if explicitUserID != nil && *explicitUserID != "" {
		return explicitUserID
	}

	if zoneID != nil && *zoneID != "" {
		user, err := r.users.FindZoneResponsible(ctx, *zoneID)
		if err != nil {
			r.log.Warn().Err(err).Str("zone_id", *zoneID).Msg("buscando responsable de zona")
		} else if user != nil {
			return &user.ID
		}
	}

	admin, err := r.users.FindFirstAdmin(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("buscando admin por defecto")
		return nil
	}
	if admin != nil {
		return &admin.ID
	}
	return nil
}
