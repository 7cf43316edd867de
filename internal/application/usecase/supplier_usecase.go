package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/access"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// SupplierUseCase registro y listado de proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	gate        *access.Gate
	requireAuth bool
}

// NewSupplierUseCase construye el caso de uso. Con requireAuth el registro exige un llamador con nivel > 1.
func NewSupplierUseCase(repo repository.SupplierRepository, gate *access.Gate, requireAuth bool) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, gate: gate, requireAuth: requireAuth}
}

// RequiresAuth indica si el registro necesita identidad verificada.
func (uc *SupplierUseCase) RequiresAuth() bool { return uc.requireAuth }

// Register crea un proveedor. caller puede ser nil cuando el registro es público.
//
// Errores: ErrUnauthorized, ErrForbidden, ErrInvalidInput, ErrDuplicateSupplier.
func (uc *SupplierUseCase) Register(ctx context.Context, caller *dto.Caller, in dto.RegisterSupplierRequest) (*dto.SupplierResponse, error) {
	if uc.requireAuth {
		if caller == nil {
			return nil, domain.ErrUnauthorized
		}
		if _, err := uc.gate.Require(ctx, caller.Email, access.CanWrite); err != nil {
			return nil, err
		}
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.StateID <= 0 || in.CategoryID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSupplier
	}
	supplier := &entity.Supplier{
		Name:       in.Name,
		StateID:    in.StateID,
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		CategoryID: in.CategoryID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		StateID:    s.StateID,
		Phone:      s.Phone,
		Email:      s.Email,
		CategoryID: s.CategoryID,
	}
}
