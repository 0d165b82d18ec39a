package migrate

import (
	"context"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // integrity CHECK constraints
	CreateIndexes          bool // indexes and UNIQUE
	CreateFKsViaSQL        bool // FKs via SQL on top of GORM constraints
	CreateUpdatedAtTrigger bool // updated_at trigger
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateMarketplaceDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting marketplace database migration")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("failed to enable pgcrypto extension", zap.Error(err))
			return err
		}
	}

	log.Info("creating tables")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Vendor{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated
BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("failed to create updated_at triggers", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("creating CHECK constraints")

		// Stock is never allowed below zero; the conditional decrement is the
		// normal guard, this is the backstop at the schema level.
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for products.stock", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_price_positive;
ALTER TABLE products
  ADD CONSTRAINT chk_products_price_positive
  CHECK (price_cfa > 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for products.price_cfa", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('PENDING','CONFIRMED','DELIVERED','CANCELLED'));
`).Error; err != nil {
			log.Error("failed to create CHECK for orders.status", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_status_allowed;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_status_allowed
  CHECK (vendor_status IN ('PENDING','PREPARING','READY','CANCELLED'));
`).Error; err != nil {
			log.Error("failed to create CHECK for order_items.vendor_status", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for order_items.quantity", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price_cfa >= 0 AND line_total_cfa >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for order_items prices", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_status_allowed;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_status_allowed
  CHECK (status IN ('PENDING','VALID','REFUNDED'));
`).Error; err != nil {
			log.Error("failed to create CHECK for payments.status", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("creating indexes")

		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_product
ON order_items (order_id, product_id);
`).Error; err != nil {
			log.Error("failed to create index ux_order_items_order_product", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_client_created
ON orders (client_id, created_at DESC);
`).Error; err != nil {
			log.Error("failed to create index ix_orders_client_created", zap.Error(err))
			return err
		}

		// Vendor-scoped aggregates and lifecycle updates filter on these.
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_order_items_vendor_status
ON order_items (vendor_id, vendor_status);
`).Error; err != nil {
			log.Error("failed to create index ix_order_items_vendor_status", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("creating foreign keys")

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK order_items.order_id -> orders.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id);
`).Error; err != nil {
			log.Error("failed to create FK order_items.product_id -> products.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_vendor,
  ADD CONSTRAINT fk_products_vendor
    FOREIGN KEY (vendor_id) REFERENCES vendors(id);
`).Error; err != nil {
			log.Error("failed to create FK products.vendor_id -> vendors.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS fk_payments_order,
  ADD CONSTRAINT fk_payments_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK payments.order_id -> orders.id", zap.Error(err))
			return err
		}
	}

	log.Info("marketplace database migration completed")
	return nil
}
