package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"portfolio-tracker/internal/model"
)

// exportColumns is the contract column order for entry exports.
var exportColumns = []string{
	"ID", "Date Added", "Type", "Currency", "Amount", "Country", "Source", "Notes", "Account Name",
}

// ExportService serializes entry lists for download.
type ExportService interface {
	EntriesToCSV(entries []model.PortfolioEntry) ([]byte, error)
}

type exportService struct{}

// NewExportService creates a new export service.
func NewExportService() ExportService {
	return &exportService{}
}

// EntriesToCSV writes the entries as CSV in the fixed column order.
func (s *exportService) EntriesToCSV(entries []model.PortfolioEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		accountName := e.Account.Name
		if accountName == "" {
			accountName = "N/A"
		}
		record := []string{
			e.ID.String(),
			e.DateAdded.Format("2006-01-02T15:04:05"),
			string(e.Type),
			e.Currency,
			e.Amount.String(),
			e.Country,
			e.Source,
			e.Notes,
			accountName,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
