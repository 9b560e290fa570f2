package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/tax"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type taxRepository struct {
	db *database.DB
}

func NewTaxRepository(db *database.DB) tax.TaxRepository {
	return &taxRepository{db: db}
}

// LoadTERTable reads both halves of the lookup in one call. The table is
// small (tens of rows) and changes rarely, so the whole thing is loaded per
// payroll run rather than queried per employee.
func (r *taxRepository) LoadTERTable(ctx context.Context) (tax.TERTable, error) {
	q := database.GetQuerier(ctx, r.db)

	table := tax.TERTable{
		StatusCategories: make(map[string]string),
		Rates:            make(map[string][]tax.Rate),
	}

	statusQuery := `
		SELECT ptkp_status, ter_category
		FROM tax_status_categories
	`

	rows, err := q.Query(ctx, statusQuery)
	if err != nil {
		return tax.TERTable{}, fmt.Errorf("failed to load tax status categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, category string
		if err := rows.Scan(&status, &category); err != nil {
			return tax.TERTable{}, fmt.Errorf("failed to scan tax status category: %w", err)
		}
		table.StatusCategories[status] = category
	}
	if err := rows.Err(); err != nil {
		return tax.TERTable{}, fmt.Errorf("failed to iterate tax status categories: %w", err)
	}

	rateQuery := `
		SELECT ter_category, min_income, max_income, rate
		FROM tax_rates
		ORDER BY ter_category, min_income
	`

	rateRows, err := q.Query(ctx, rateQuery)
	if err != nil {
		return tax.TERTable{}, fmt.Errorf("failed to load tax rates: %w", err)
	}
	defer rateRows.Close()

	for rateRows.Next() {
		var rate tax.Rate
		if err := rateRows.Scan(&rate.Category, &rate.MinIncome, &rate.MaxIncome, &rate.Rate); err != nil {
			return tax.TERTable{}, fmt.Errorf("failed to scan tax rate: %w", err)
		}
		table.Rates[rate.Category] = append(table.Rates[rate.Category], rate)
	}
	if err := rateRows.Err(); err != nil {
		return tax.TERTable{}, fmt.Errorf("failed to iterate tax rates: %w", err)
	}

	return table, nil
}
