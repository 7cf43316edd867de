package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// AuditReportGenerator puerto de salida para el reporte PDF del histórico.
type AuditReportGenerator interface {
	GenerateAuditReport(ctx context.Context, title string, generatedAt time.Time, entries []*entity.AuditEntry) ([]byte, error)
}

// AuditUseCase lectura y exportación del histórico.
type AuditUseCase struct {
	repo      repository.AuditRepository
	generator AuditReportGenerator
	appName   string
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository, generator AuditReportGenerator, appName string) *AuditUseCase {
	return &AuditUseCase{repo: repo, generator: generator, appName: appName}
}

// List devuelve todas las entradas del histórico.
func (uc *AuditUseCase) List(ctx context.Context) ([]dto.AuditEntryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.AuditEntryResponse{ID: e.ID, Description: e.Description})
	}
	return out, nil
}

// ExportPDF genera el reporte del histórico y el nombre de archivo sugerido.
func (uc *AuditUseCase) ExportPDF(ctx context.Context) ([]byte, string, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	doc, err := uc.generator.GenerateAuditReport(ctx, uc.appName+" - Histórico", now, list)
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	return doc, fmt.Sprintf("historico-%s.pdf", now.Format("20060102-150405")), nil
}
