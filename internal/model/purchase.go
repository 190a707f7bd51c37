package model

import "time"

// PurchaseStatus tracks manual adjudication of a purchase request.
type PurchaseStatus string

const (
	// PurchasePending is assigned on creation. Other statuses are written outside the bot.
	PurchasePending   PurchaseStatus = "pending"
	PurchaseConfirmed PurchaseStatus = "confirmed"
	PurchaseRejected  PurchaseStatus = "rejected"
)

// PurchaseRequest records a user's intent to buy an item.
// ItemID may reference an item that has since been deleted.
type PurchaseRequest struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	ItemID    int64          `db:"item_id"`
	Status    PurchaseStatus `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
}
