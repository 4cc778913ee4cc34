package domain

import "github.com/shopspring/decimal"

// Product is a catalog item (bouquet, arrangement, accessory).
// Price is always stored in INR; display conversion happens at read time.
type Product struct {
	ProductID   string          `json:"productID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageURL"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}
