package store

import (
	"context"
	"fmt"

	"github.com/m3rciful/petshop/internal/model"
)

const purchaseColumns = `id, user_id, item_id, status, created_at`

// CreatePurchase files a pending purchase request and returns its id.
func (s *Store) CreatePurchase(ctx context.Context, userID, itemID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		s.q(`INSERT INTO purchases (user_id, item_id, status) VALUES (?, ?, ?) RETURNING id`),
		userID, itemID, model.PurchasePending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create purchase for item %d: %w", itemID, err)
	}
	return id, nil
}

// GetPurchase returns the purchase request or nil when unknown.
func (s *Store) GetPurchase(ctx context.Context, id int64) (*model.PurchaseRequest, error) {
	var p model.PurchaseRequest
	ok, err := s.getOne(ctx, &p, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListPurchasesByUser returns a user's requests, newest first.
func (s *Store) ListPurchasesByUser(ctx context.Context, userID int64) ([]model.PurchaseRequest, error) {
	out := []model.PurchaseRequest{}
	err := s.db.SelectContext(ctx, &out,
		s.q(`SELECT `+purchaseColumns+` FROM purchases WHERE user_id = ? ORDER BY id DESC`), userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases of %d: %w", userID, err)
	}
	return out, nil
}
