package cart

import (
	"errors"

	"github.com/wirote65/storefront-backend/internal/product"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrNoOwner         = errors.New("userId or sessionId is required")
	ErrInvalidProduct  = errors.New("invalid productId")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Owner identifies whose cart a row belongs to: an authenticated user id or
// an anonymous session id, never both.
type Owner struct {
	UserID    int
	SessionID string
}

// ResolveOwner picks the owner key from the caller-supplied identifiers.
// An authenticated userId wins over a sessionId when both are present;
// at least one must be supplied.
func ResolveOwner(userID int, sessionID string) (Owner, error) {
	if userID > 0 {
		return Owner{UserID: userID}, nil
	}
	if sessionID != "" {
		return Owner{SessionID: sessionID}, nil
	}
	return Owner{}, ErrNoOwner
}

// Item is a single cart row.
type Item struct {
	ID        int     `json:"id"`
	ProductID int     `json:"productId"`
	UserID    *int    `json:"userId,omitempty"`
	SessionID *string `json:"sessionId,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Line is a cart row joined to its product for listing.
type Line struct {
	Item
	Product product.Product `json:"product"`
}
