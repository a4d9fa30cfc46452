package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"portfolio-tracker/internal/model"
)

func TestEntriesToCSV_ColumnOrder(t *testing.T) {
	svc := NewExportService()

	account := model.PortfolioAccount{ID: uuid.New(), Name: "Mom"}
	entry := newEntry(account.ID, model.EntryTypeStock, "Fidelity", "100.00", "USD", "US")
	entry.Account = account
	entry.Notes = "long term"
	entry.DateAdded = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	data, err := svc.EntriesToCSV([]model.PortfolioEntry{entry})
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, []string{
		"ID", "Date Added", "Type", "Currency", "Amount", "Country", "Source", "Notes", "Account Name",
	}, records[0])

	row := records[1]
	assert.Equal(t, entry.ID.String(), row[0])
	assert.Equal(t, "2026-03-14T09:30:00", row[1])
	assert.Equal(t, "STOCK", row[2])
	assert.Equal(t, "USD", row[3])
	assert.Equal(t, "100", row[4])
	assert.Equal(t, "US", row[5])
	assert.Equal(t, "Fidelity", row[6])
	assert.Equal(t, "long term", row[7])
	assert.Equal(t, "Mom", row[8])
}

func TestEntriesToCSV_MissingAccountName(t *testing.T) {
	svc := NewExportService()

	entry := newEntry(uuid.New(), model.EntryTypeCash, "HDFC", "10.00", "INR", "IN")

	data, err := svc.EntriesToCSV([]model.PortfolioEntry{entry})
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "N/A", records[1][8])
}

func TestEntriesToCSV_EmptyList(t *testing.T) {
	svc := NewExportService()

	data, err := svc.EntriesToCSV(nil)
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 1) // header only
}
