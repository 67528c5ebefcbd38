package usecase

import "context"

// SeedReport counts the rows a seed run created. Existing rows are skipped.
type SeedReport struct {
	AdminCreated      bool
	CategoriesCreated int
	ProductsCreated   int
}

// SeedUsecase loads the initial admin account and the sample catalog.
type SeedUsecase interface {
	Seed(ctx context.Context) (*SeedReport, error)
}
