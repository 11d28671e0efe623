package client

import (
	"context"
	"net/http"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// StockItems fetches the user's stock inventory. A 404 means the user
// has no products yet and yields an empty slice.
func (c *Client) StockItems(ctx context.Context, userID string) ([]Item, error) {
	result := &listResponse{}
	if _, err := c.do(ctx, http.MethodGet, "/api/produits/"+userID, nil, result); err != nil {
		if goerrors.IsNotFound(err) {
			return []Item{}, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// UpdateProduct overwrites a stock entry.
func (c *Client) UpdateProduct(ctx context.Context, item Item) error {
	_, err := c.do(ctx, http.MethodPut, "/api/modifi/produit/"+strconv.FormatInt(item.ID, 10), item, nil)
	return err
}

// DeleteProduct removes a stock entry.
func (c *Client) DeleteProduct(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/supprime/produit/"+strconv.FormatInt(itemID, 10), nil, nil)
	return err
}
