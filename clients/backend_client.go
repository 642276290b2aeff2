package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

// FetchError is returned for any backend call that fails on the wire or
// with a non-2xx status. Callers branch on it to offer a manual retry.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrProfileNotFound is returned when the backend has no stored shipping
// profile for the user yet.
var ErrProfileNotFound = &FetchError{Op: "get user profile", StatusCode: http.StatusNotFound}

type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CategoryGroup is one backend-side grouping of raw item records.
type CategoryGroup struct {
	CategoryID   string    `json:"_id"`
	CategoryName string    `json:"categoryName"`
	Items        []RawItem `json:"items"`
}

// RawItem is the backend's item record before normalization. Price and
// quantity arrive as number-or-string depending on the endpoint, so
// both decode through json.Number.
type RawItem struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Color     string      `json:"color"`
	Image     string      `json:"itemphoto"`
	Brand     string      `json:"brand"`
	Features  string      `json:"features"`
	Qty       json.Number `json:"qty"`
	ShopID    string      `json:"shopId"`
	ShopName  string      `json:"shopName"`
}

// ToItem converts a raw record into the normalized Item, annotating it
// with the category it was grouped under. Explicit shop identifiers on
// the record win over the group-level ones.
func (r RawItem) ToItem(categoryID, categoryName, shopID, shopName string) models.Item {
	price, _ := r.Price.Int64()
	qty, _ := r.Qty.Int64()
	if qty < 0 {
		qty = 0
	}
	item := models.Item{
		ItemID:       r.ID,
		Name:         r.Name,
		Price:        price,
		Color:        r.Color,
		Image:        r.Image,
		Brand:        r.Brand,
		Features:     r.Features,
		Available:    int32(qty),
		ShopID:       r.ShopID,
		ShopName:     r.ShopName,
		CategoryID:   categoryID,
		CategoryName: categoryName,
	}
	if item.ShopID == "" {
		item.ShopID = shopID
	}
	if item.ShopName == "" {
		item.ShopName = shopName
	}
	return item
}

type itemsResponse struct {
	Categories []CategoryGroup `json:"categories"`
}

type shopResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"shopName"`
	Detail string `json:"description"`
}

// GetShop fetches shop detail. Callers treat failure as best-effort.
func (c *BackendClient) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	var resp shopResponse
	if err := c.getJSON(ctx, "get shop", "/shops/"+url.PathEscape(shopID), &resp); err != nil {
		return nil, err
	}
	return &models.Shop{ShopID: resp.ID, Name: resp.Name, Detail: resp.Detail}, nil
}

// ListItems fetches the full catalog grouped by category.
func (c *BackendClient) ListItems(ctx context.Context) ([]CategoryGroup, error) {
	var resp itemsResponse
	if err := c.getJSON(ctx, "list items", "/items", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ListShopItems fetches one shop's catalog grouped by category.
func (c *BackendClient) ListShopItems(ctx context.Context, shopID string) ([]CategoryGroup, error) {
	var resp itemsResponse
	if err := c.getJSON(ctx, "list shop items", "/items/shop/"+url.PathEscape(shopID), &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ListCategoryItems fetches the items of a single category by its
// backend identifier.
func (c *BackendClient) ListCategoryItems(ctx context.Context, categoryID string) ([]CategoryGroup, error) {
	var resp itemsResponse
	if err := c.getJSON(ctx, "list category items", "/items/category/"+url.PathEscape(categoryID), &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// GetItem fetches a single item's detail for checkout entry.
func (c *BackendClient) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	var raw struct {
		RawItem
		CategoryID   string `json:"categoryId"`
		CategoryName string `json:"categoryName"`
	}
	if err := c.getJSON(ctx, "get item", "/items/"+url.PathEscape(itemID), &raw); err != nil {
		return nil, err
	}
	item := raw.ToItem(raw.CategoryID, raw.CategoryName, "", "")
	return &item, nil
}

// GetUserProfile reads the shipping profile. A 404 maps to
// ErrProfileNotFound so the address form can start empty.
func (c *BackendClient) GetUserProfile(ctx context.Context, userID string) (*models.AddressProfile, error) {
	var profile models.AddressProfile
	err := c.getJSON(ctx, "get user profile", "/user/"+url.PathEscape(userID), &profile)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// PutUserProfile overwrites the shipping profile wholesale.
func (c *BackendClient) PutUserProfile(ctx context.Context, userID string, profile models.AddressProfile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/user/"+url.PathEscape(userID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: "save user profile", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: "save user profile", StatusCode: resp.StatusCode}
	}
	return nil
}

type CreateIntentRequest struct {
	Amount      int64  `json:"amount"`
	FirebaseUID string `json:"FirebaseUID"`
	ItemID      string `json:"ItemID"`
	ItemName    string `json:"ItemName"`
}

type CreateIntentResponse struct {
	ClientSecret string          `json:"clientSecret"`
	Payment      json.RawMessage `json:"payment"`
}

// CreatePaymentIntent asks the backend to create a gateway payment
// intent for the given amount.
func (c *BackendClient) CreatePaymentIntent(ctx context.Context, in CreateIntentRequest) (*CreateIntentResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/intents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "create payment intent", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "create payment intent", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: "create payment intent", StatusCode: resp.StatusCode}
	}

	var out CreateIntentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &FetchError{Op: "create payment intent", Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return &out, nil
}

func (c *BackendClient) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}
