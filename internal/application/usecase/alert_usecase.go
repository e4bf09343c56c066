package usecase

import (
	"context"

	"github.com/jhoicas/stockgenius-api/internal/application/dto"
	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
	"github.com/jhoicas/stockgenius-api/internal/domain/repository"
)

// AlertUseCase lado de lectura de alertas: listados filtrados para la API.
// La escritura de alertas es exclusiva del motor de reglas.
type AlertUseCase struct {
	alerts repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alerts repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alerts: alerts}
}

// List devuelve alertas filtradas por status y/o type, paginadas.
func (uc *AlertUseCase) List(ctx context.Context, in dto.AlertListRequest) (*dto.AlertListResponse, error) {
	in.DefaultPage()
	alerts, err := uc.alerts.List(ctx, repository.AlertFilter{
		Status: in.Status,
		Type:   in.Type,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.AlertListResponse{Items: make([]dto.AlertResponse, 0, len(alerts))}
	for _, a := range alerts {
		out.Items = append(out.Items, toAlertResponse(a))
	}
	return out, nil
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        a.ID,
		ProductID: a.ProductID,
		Type:      a.Type,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UserID:    a.UserID,
	}
}
