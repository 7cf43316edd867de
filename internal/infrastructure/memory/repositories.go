package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.ReferenceRepository = (*ReferenceRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.AuditRepository     = (*AuditRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

// Create persiste un usuario; email único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.s.with(false, func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrDuplicateUser
			}
		}
		user.ID = d.next("users")
		cp := *user
		d.users[user.ID] = &cp
		return nil
	})
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.with(false, func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List lista usuarios por ID.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.with(false, func(d *data) error {
		for _, id := range sortedIDs(d.users) {
			cp := *d.users[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ s *Store }

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

// Create persiste un proveedor validando nombre único y referencias.
func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.s.with(false, func(d *data) error {
		for _, s := range d.suppliers {
			if s.Name == supplier.Name {
				return domain.ErrDuplicateSupplier
			}
		}
		if _, ok := d.categories[supplier.CategoryID]; !ok {
			return domain.ErrInvalidInput
		}
		if _, ok := d.states[supplier.StateID]; !ok {
			return domain.ErrInvalidInput
		}
		supplier.ID = d.next("suppliers")
		cp := *supplier
		d.suppliers[supplier.ID] = &cp
		return nil
	})
}

// GetByName obtiene un proveedor por nombre.
func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.with(false, func(d *data) error {
		for _, s := range d.suppliers {
			if s.Name == name {
				cp := *s
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

// List lista proveedores por ID.
func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.with(false, func(d *data) error {
		for _, id := range sortedIDs(d.suppliers) {
			cp := *d.suppliers[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// ReferenceRepo categorías y estados en memoria.
type ReferenceRepo struct{ s *Store }

// NewReferenceRepository construye el repositorio.
func NewReferenceRepository(s *Store) *ReferenceRepo { return &ReferenceRepo{s: s} }

// ListCategories lista categorías por ID.
func (r *ReferenceRepo) ListCategories(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.with(false, func(d *data) error {
		for _, id := range sortedIDs(d.categories) {
			cp := *d.categories[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// ListStates lista estados por ID.
func (r *ReferenceRepo) ListStates(_ context.Context) ([]*entity.State, error) {
	var out []*entity.State
	err := r.s.with(false, func(d *data) error {
		for _, id := range sortedIDs(d.states) {
			cp := *d.states[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// ProductRepo productos en memoria. held indica que el lock lo tiene el TxRunner.
type ProductRepo struct {
	s    *Store
	held bool
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

// Create persiste un producto; nombre único y proveedor existente.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.s.with(r.held, func(d *data) error {
		for _, p := range d.products {
			if p.Name == product.Name {
				return domain.ErrDuplicateProduct
			}
		}
		if _, ok := d.suppliers[product.SupplierID]; !ok {
			return domain.ErrSupplierNotFound
		}
		product.ID = d.next("products")
		cp := *product
		d.products[product.ID] = &cp
		return nil
	})
}

// GetByName obtiene un producto por nombre.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.held, func(d *data) error {
		for _, p := range d.products {
			if p.Name == name {
				cp := *p
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate obtiene un producto por ID (el lock del store ya serializa).
func (r *ProductRepo) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.held, func(d *data) error {
		if p, ok := d.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// Update reemplaza la fila.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.s.with(r.held, func(d *data) error {
		if _, ok := d.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, p := range d.products {
			if p.ID != product.ID && p.Name == product.Name {
				return domain.ErrDuplicateProduct
			}
		}
		if _, ok := d.suppliers[product.SupplierID]; !ok {
			return domain.ErrSupplierNotFound
		}
		cp := *product
		d.products[product.ID] = &cp
		return nil
	})
}

// Delete elimina la fila.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.s.with(r.held, func(d *data) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.products, id)
		return nil
	})
}

// ListWithSupplier lista productos con el nombre del proveedor, por ID.
func (r *ProductRepo) ListWithSupplier(_ context.Context) ([]*entity.ProductListing, error) {
	var out []*entity.ProductListing
	err := r.s.with(r.held, func(d *data) error {
		for _, id := range sortedIDs(d.products) {
			p := d.products[id]
			s, ok := d.suppliers[p.SupplierID]
			if !ok {
				continue // JOIN interno
			}
			out = append(out, &entity.ProductListing{
				ID:           p.ID,
				Name:         p.Name,
				Quantity:     p.Quantity,
				Price:        p.Price,
				Image:        p.Image,
				SupplierName: s.Name,
				SupplierID:   s.ID,
			})
		}
		return nil
	})
	return out, err
}

// AuditRepo histórico en memoria.
type AuditRepo struct {
	s    *Store
	held bool
}

// NewAuditRepository construye el repositorio fuera de transacción.
func NewAuditRepository(s *Store) *AuditRepo { return &AuditRepo{s: s} }

// Append agrega una entrada.
func (r *AuditRepo) Append(_ context.Context, description string) (*entity.AuditEntry, error) {
	var out *entity.AuditEntry
	err := r.s.with(r.held, func(d *data) error {
		e := &entity.AuditEntry{ID: d.next("audit"), Description: description, CreatedAt: nowFunc()}
		d.audit = append(d.audit, e)
		cp := *e
		out = &cp
		return nil
	})
	return out, err
}

// List lista el histórico en orden de inserción.
func (r *AuditRepo) List(_ context.Context) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	err := r.s.with(r.held, func(d *data) error {
		for _, e := range d.audit {
			cp := *e
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
