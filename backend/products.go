package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bookbazaar/storefront-api/models"
)

// ProductQuery narrows a product listing. Zero values are omitted from
// the request.
type ProductQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// ProductList is a paginated listing response.
type ProductList struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	vals := url.Values{}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Page > 0 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/api/products"
	if len(vals) > 0 {
		path += "?" + vals.Encode()
	}
	var list ProductList
	if err := c.do(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/slug/"+url.PathEscape(slug), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var list ProductList
	path := "/api/products/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", "", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/active", "", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
