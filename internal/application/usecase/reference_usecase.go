package usecase

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ReferenceUseCase lectura de datos de referencia servidos tal cual al frontend.
type ReferenceUseCase struct {
	repo repository.ReferenceRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(repo repository.ReferenceRepository) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo}
}

// Categories lista las categorías.
func (uc *ReferenceUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// States lista los estados (regiones) de proveedores.
func (uc *ReferenceUseCase) States(ctx context.Context) ([]dto.StateResponse, error) {
	list, err := uc.repo.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StateResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StateResponse{ID: s.ID, Name: s.Name, Abbreviation: s.Abbreviation})
	}
	return out, nil
}
