package repository

import (
	"context"

	"github.com/jhoicas/stockgenius-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}
