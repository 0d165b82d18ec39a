package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultLockTimeout bounds row-lock waits inside WithTx. Order placement
// locks several product rows in one transaction, so an explicit ceiling
// keeps contending placements from queueing unbounded.
const DefaultLockTimeout = 3 * time.Second

type Repository struct {
	DB          *gorm.DB
	LockTimeout time.Duration

	Vendors    VendorRepo
	Products   ProductRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Payments   PaymentRepo
}

func buildRepository(db *gorm.DB, lockTimeout time.Duration) *Repository {
	return &Repository{
		DB:          db,
		LockTimeout: lockTimeout,
		Vendors:     NewVendorRepo(db),
		Products:    NewProductRepo(db),
		Orders:      NewOrderRepo(db),
		OrderItems:  NewOrderItemRepo(db),
		Payments:    NewPaymentRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db, DefaultLockTimeout) }

func NewWithLockTimeout(db *gorm.DB, lockTimeout time.Duration) *Repository {
	return buildRepository(db, lockTimeout)
}

// WithTx runs fn inside one transaction with every repo rebound to the tx
// handle. The lock_timeout is set LOCAL so an aborted wait rolls the whole
// transaction back instead of leaving partial writes.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.LockTimeout > 0 {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())).Error; err != nil {
				return err
			}
		}
		return fn(buildRepository(tx, r.LockTimeout))
	})
}
