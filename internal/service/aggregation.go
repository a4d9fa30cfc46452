package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/model"
)

// Classifier selects the grouping key used by GroupSum. The set is closed:
// each classifier maps to a fixed key extractor, no reflection involved.
type Classifier string

const (
	ClassifierCurrency Classifier = "currency"
	ClassifierCountry  Classifier = "country"
	ClassifierSource   Classifier = "source"
	ClassifierType     Classifier = "type"
	ClassifierAccount  Classifier = "account"
)

// Valid reports whether c is a known classifier.
func (c Classifier) Valid() bool {
	switch c {
	case ClassifierCurrency, ClassifierCountry, ClassifierSource, ClassifierType, ClassifierAccount:
		return true
	}
	return false
}

// Key extracts the grouping key of an entry under this classifier.
func (c Classifier) Key(e *model.PortfolioEntry) string {
	switch c {
	case ClassifierCurrency:
		return e.Currency
	case ClassifierCountry:
		return e.Country
	case ClassifierSource:
		return e.Source
	case ClassifierType:
		return string(e.Type)
	case ClassifierAccount:
		return e.AccountID.String()
	}
	return ""
}

// GroupSum sums entry amounts per classifier key with exact decimal addition.
// Input order is irrelevant; empty input yields an empty map.
func GroupSum(entries []model.PortfolioEntry, c Classifier) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(entries))
	for i := range entries {
		key := c.Key(&entries[i])
		sums[key] = sums[key].Add(entries[i].Amount)
	}
	return sums
}

// Total sums all entry amounts. Only meaningful when the caller has already
// restricted the entries to one currency; exposed because the original
// surface reports it across the whole portfolio.
func Total(entries []model.PortfolioEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].Amount)
	}
	return total
}

type combineKey struct {
	source    string
	entryType model.EntryType
	currency  string
	country   string
	accountID uuid.UUID
}

// Combine collapses entries sharing (source, type, currency, country, account)
// into one synthetic entry whose amount is the group's sum. The last entry of
// a group supplies the representative fields; this is a display aggregate, not
// a persisted record. Entries without a match pass through as singletons.
func Combine(entries []model.PortfolioEntry) []model.PortfolioEntry {
	reps := make(map[combineKey]model.PortfolioEntry, len(entries))
	sums := make(map[combineKey]decimal.Decimal, len(entries))
	order := make([]combineKey, 0, len(entries))

	for i := range entries {
		e := entries[i]
		key := combineKey{
			source:    e.Source,
			entryType: e.Type,
			currency:  e.Currency,
			country:   e.Country,
			accountID: e.AccountID,
		}
		if _, seen := reps[key]; !seen {
			order = append(order, key)
		}
		reps[key] = e
		sums[key] = sums[key].Add(e.Amount)
	}

	combined := make([]model.PortfolioEntry, 0, len(order))
	for _, key := range order {
		rep := reps[key]
		rep.Amount = sums[key]
		combined = append(combined, rep)
	}
	return combined
}
