package services

import (
	"collector/internal/database"
	"collector/internal/logger"
	"context"

	"gorm.io/gorm"
)

type transactionKey struct{}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a single database transaction. The transaction is
// carried on the context so repositories resolve it through GetTransaction.
func (s *TransactionService) Execute(
	ctx context.Context,
	fn func(txCtx context.Context) error,
) error {
	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, transactionKey{}, tx))
	})
}

// GetTransaction returns the ambient transaction from the context, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}
