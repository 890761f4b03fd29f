package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
)

// ExportService renders the document register as an xlsx workbook.
type ExportService struct {
	docRepo *repository.SuratJalanRepository
}

// NewExportService creates the export service.
func NewExportService(docRepo *repository.SuratJalanRepository) *ExportService {
	return &ExportService{docRepo: docRepo}
}

const exportPageSize = 1000

// Register builds an xlsx workbook of published documents matching the
// filters.
func (s *ExportService) Register(ctx context.Context, filters map[string]interface{}) (*excelize.File, error) {
	if filters == nil {
		filters = map[string]interface{}{}
	}
	filters["status_entry"] = entity.StatusEntryPublished

	f := excelize.NewFile()
	sheet := "Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Nomor", "Kategori", "Perihal", "Status", "Pembuat", "Tanggal"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for page := 1; ; page++ {
		docs, _, err := s.docRepo.List(ctx, page, exportPageSize, filters)
		if err != nil {
			return nil, fmt.Errorf("list documents for export: %w", err)
		}
		if len(docs) == 0 {
			break
		}

		for i := range docs {
			doc := &docs[i]
			doc.Decorate()

			creator := doc.CreatedBy
			if doc.Creator != nil {
				creator = doc.Creator.Name
			}

			values := []interface{}{
				doc.Nomor,
				doc.Kategori,
				doc.Perihal,
				doc.DisplayStatus,
				creator,
				doc.CreatedAt.Format("2006-01-02 15:04"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if len(docs) < exportPageSize {
			break
		}
	}

	return f, nil
}
