package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. With a nil db (in-memory fakes)
// fn runs directly with a nil tx so services stay testable without a
// database.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
