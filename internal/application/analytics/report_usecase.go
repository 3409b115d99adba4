package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// InventoryReport datos que recibe el generador de PDF.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	Items       []*entity.Item
	Summary     dto.DashboardSummaryDTO
}

// InventoryReportGenerator puerto hacia el motor de PDF (infraestructura).
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, report InventoryReport) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del inventario actual.
type ReportUseCase struct {
	itemRepo  repository.ItemRepository
	generator InventoryReportGenerator
	title     string
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. title encabeza el documento (nombre de la app).
func NewReportUseCase(itemRepo repository.ItemRepository, generator InventoryReportGenerator, title string) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, generator: generator, title: title, now: time.Now}
}

// DownloadInventoryPDF devuelve (pdfBytes, filename, nil). Un inventario vacío produce un
// documento con la tabla vacía, no un error.
func (uc *ReportUseCase) DownloadInventoryPDF(ctx context.Context) ([]byte, string, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar items: %w", err)
	}
	at := uc.now().UTC()
	report := InventoryReport{
		Title:       uc.title,
		GeneratedAt: at,
		Items:       items,
		Summary:     *summarize(items, at),
	}
	pdf, err := uc.generator.GenerateInventoryReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("inventario_%s.pdf", at.Format("20060102_150405")), nil
}
