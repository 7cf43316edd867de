package memory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

var nowFunc = time.Now

// TxRunner serializa las transacciones con el lock del store y revierte si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios atados a la "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.d.clone()
	if err := fn(&ProductRepo{s: r.s, held: true}, &AuditRepo{s: r.s, held: true}); err != nil {
		r.s.d = snapshot
		return err
	}
	return nil
}
