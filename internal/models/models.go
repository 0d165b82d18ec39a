package models

import (
	"time"

	"github.com/google/uuid"
)

const CurrencyXOF = "XOF"

// Vendor is a GIE (groupement d'intérêt économique): a producer cooperative
// that owns products and fulfils its own line items within a shared order.
type Vendor struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"type:text;not null"`
	ContactEmail string    `gorm:"type:text;not null"`
	ContactPhone string    `gorm:"type:text"`
	Region       string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Vendor) TableName() string { return "vendors" }

type StockStatus string

const (
	StockAvailable StockStatus = "available"
	StockLow       StockStatus = "low"
	StockOut       StockStatus = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a product is
// reported as running low.
const LowStockThreshold = 5

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	PriceCfa    int64     `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"` // CHECK stock >= 0 in migration
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

// StockStatus is derived, never stored.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock <= LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Number          string      `gorm:"type:text;not null;uniqueIndex"`
	ClientID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status          OrderStatus `gorm:"type:text;not null;default:'PENDING';index"`
	AmountCfa       int64       `gorm:"not null;default:0"` // fixed at creation, never recomputed
	DeliveryAddress string      `gorm:"type:text;not null"`
	ContactPhone    string      `gorm:"type:text;not null"`
	CancelReason    *string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *Payment    `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// ItemStatus is the per-vendor fulfilment status of one line item
// (statut GIE). It moves independently of the order-level status.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusPreparing ItemStatus = "PREPARING"
	ItemStatusReady     ItemStatus = "READY"
	ItemStatusCancelled ItemStatus = "CANCELLED"
)

type OrderItem struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	// VendorID is denormalized from the product so vendor-scoped updates and
	// the fan-out grouping never need a join through products.
	VendorID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product"`
	ProductName  string     `gorm:"type:text;not null"` // snapshot at placement
	Quantity     int        `gorm:"type:int;not null"`  // CHECK quantity > 0 in migration
	UnitPriceCfa int64      `gorm:"not null"`           // snapshot, immune to later price changes
	LineTotalCfa int64      `gorm:"not null"`
	VendorStatus ItemStatus `gorm:"type:text;not null;default:'PENDING';index"`
	CancelReason *string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

type PaymentMethod string

const (
	PaymentMethodWave           PaymentMethod = "WAVE"
	PaymentMethodOrangeMoney    PaymentMethod = "ORANGE_MONEY"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// ImmediateSettlement reports whether the method settles at order time.
// Immediate methods start VALID; cash on delivery stays PENDING until
// the courier collects.
func (m PaymentMethod) ImmediateSettlement() bool {
	return m == PaymentMethodWave || m == PaymentMethodOrangeMoney
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodWave, PaymentMethodOrangeMoney, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusValid    PaymentStatus = "VALID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"` // 1:1 with order
	AmountCfa int64         `gorm:"not null"`
	Method    PaymentMethod `gorm:"type:text;not null"`
	Status    PaymentStatus `gorm:"type:text;not null;default:'PENDING';index"`
	Reference string        `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Payment) TableName() string { return "payments" }
