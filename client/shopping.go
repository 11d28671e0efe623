package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// Item is a shopping-list or stock entry.
type Item struct {
	ID          int64  `json:"id"`
	Designation string `json:"designation"`
	UserID      int64  `json:"user_id,omitempty"`
	TypeID      int    `json:"type_id"`
	GenreID     int    `json:"genre_id"`
	Quantity    int    `json:"quantite"`
}

// NewItem is the payload for adding a product to the shopping list.
type NewItem struct {
	Designation string `json:"designation"`
	UserID      int64  `json:"user_id"`
	TypeID      int    `json:"type_id"`
	GenreID     int    `json:"genre_id"`
	Quantity    int    `json:"quantite"`
}

// listResponse wraps the item collections the list endpoints return.
type listResponse struct {
	Data []Item `json:"data"`
}

// ProductExistsError is the 409 payload returned when adding a product
// that is already on the shopping list. The backend suggests the
// follow-up action and reports the current quantity so callers can
// offer a quantity update instead.
type ProductExistsError struct {
	Message         string `json:"error"`
	ProductID       int64  `json:"productId"`
	CurrentQuantity int    `json:"currentQuantity"`
	Action          string `json:"action"`
}

// Error implements the error interface.
func (e *ProductExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("product %d already exists with quantity %d", e.ProductID, e.CurrentQuantity)
}

// ShoppingList fetches the user's shopping list. The backend answers
// 404 when the user has no list yet; that is an empty list, not an
// error.
func (c *Client) ShoppingList(ctx context.Context, userID string) ([]Item, error) {
	result := &listResponse{}
	if _, err := c.do(ctx, http.MethodGet, "/api/affiche/shoppingList/"+userID, nil, result); err != nil {
		if goerrors.IsNotFound(err) {
			return []Item{}, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// AddItem adds a product to the shopping list. When the product
// already exists the backend answers 409; that surfaces as a
// *ProductExistsError so callers can offer a quantity merge.
func (c *Client) AddItem(ctx context.Context, item NewItem) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/shopping-list", item, nil)
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryConflict {
		conflict := &ProductExistsError{}
		if jsonErr := json.Unmarshal(raw, conflict); jsonErr == nil && conflict.ProductID != 0 {
			return conflict
		}
	}
	return err
}

// ValidateItem moves a shopping-list entry into the stock inventory.
func (c *Client) ValidateItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodPost, "/api/shopping-list/validate/"+strconv.FormatInt(itemID, 10), nil, nil)
	return err
}

// DeleteShoppingItem removes an entry from the shopping list.
func (c *Client) DeleteShoppingItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/delete/shoppingList/"+strconv.FormatInt(itemID, 10), nil, nil)
	return err
}
