package model

import "time"

// SalesTransaction is one immutable sale record. Every data column is
// nullable in the store (bad ingestion may leave NULL), so fields use
// pointers; the response layer maps nil to "" / 0.
type SalesTransaction struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Customer
	CustomerID     *string `gorm:"type:varchar(50);index" json:"customer_id"`
	CustomerName   *string `gorm:"type:varchar(200);index;index:idx_search,priority:1" json:"customer_name"`
	PhoneNumber    *string `gorm:"type:varchar(20);index;index:idx_search,priority:2" json:"phone_number"`
	Gender         *string `gorm:"type:varchar(20);index;index:idx_filter_combo,priority:2" json:"gender"`
	Age            *int    `gorm:"index" json:"age"`
	CustomerRegion *string `gorm:"type:varchar(100);index;index:idx_filter_combo,priority:1" json:"customer_region"`
	CustomerType   *string `gorm:"type:varchar(50)" json:"customer_type"`

	// Product
	ProductID       *string `gorm:"type:varchar(50)" json:"product_id"`
	ProductName     *string `gorm:"type:varchar(200)" json:"product_name"`
	Brand           *string `gorm:"type:varchar(100)" json:"brand"`
	ProductCategory *string `gorm:"type:varchar(100);index;index:idx_filter_combo,priority:3" json:"product_category"`
	Tags            *string `gorm:"type:varchar(500)" json:"tags"` // comma-separated labels

	// Commercial
	Quantity           *int     `gorm:"index" json:"quantity"`
	PricePerUnit       *float64 `json:"price_per_unit"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	TotalAmount        *float64 `json:"total_amount"`
	FinalAmount        *float64 `json:"final_amount"`

	// Operational
	TransactionDate *time.Time `gorm:"type:date;index" json:"transaction_date"`
	PaymentMethod   *string    `gorm:"type:varchar(50);index" json:"payment_method"`
	OrderStatus     *string    `gorm:"type:varchar(50)" json:"order_status"`
	DeliveryType    *string    `gorm:"type:varchar(50)" json:"delivery_type"`
	StoreID         *string    `gorm:"type:varchar(50)" json:"store_id"`
	StoreLocation   *string    `gorm:"type:varchar(200)" json:"store_location"`
	SalespersonID   *string    `gorm:"type:varchar(50)" json:"salesperson_id"`
	EmployeeName    *string    `gorm:"type:varchar(200)" json:"employee_name"`
}

func (SalesTransaction) TableName() string {
	return "sales_transactions"
}
