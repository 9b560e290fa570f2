package tax

import "context"

type TaxRepository interface {
	LoadTERTable(ctx context.Context) (TERTable, error)
}
