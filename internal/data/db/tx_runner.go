package db

import (
	"context"

	"gorm.io/gorm"
)

// TxContext carries the caller's context and the open transaction into a
// unit of work. Repos accept Tx directly and fall back to their own handle
// when it is nil.
type TxContext struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// TxRunner provides a shared transaction boundary for storage writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc TxContext) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
// A nil db yields a runner that fails every call with ErrNoDatabase.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc TxContext) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return ErrNoDatabase
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxContext{Ctx: ctx, Tx: tx})
	})
}
