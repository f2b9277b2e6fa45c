// Package catalog talks to the Open Food Facts HTTP API: product lookup by
// barcode and category-scoped search for alternative candidates.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Maitreya04/greendotv3/internal/models"
)

const userAgent = "greendot/3.0 (https://github.com/Maitreya04/greendotv3)"

// searchFields is the fixed field projection requested from the search API.
const searchFields = "code,product_name,brands,image_url,categories_tags," +
	"countries_tags,labels_tags,allergens_tags,ingredients_analysis_tags," +
	"ingredients_text,nutrition_grades,nova_group,ecoscore_grade," +
	"ecoscore_score,nutriments,additives_n,ingredients_from_palm_oil_n"

// searchPageSize is the fixed page size contract for category search.
const searchPageSize = 50

// Client is an Open Food Facts API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// https://world.openfoodfacts.org.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ProductByCode fetches one product record by barcode. An unknown code
// returns (nil, nil) rather than an error.
func (c *Client) ProductByCode(ctx context.Context, code string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s",
		c.baseURL, url.PathEscape(code), url.QueryEscape(searchFields))

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("product lookup %s: %w", code, err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("product lookup %s: unexpected status %d", code, status)
	}

	var response productResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("product lookup %s: decode: %w", code, err)
	}
	if response.Status != 1 {
		return nil, nil
	}

	product := response.Product.toProduct()
	if product.Code == "" {
		product.Code = code
	}
	return &product, nil
}

// SearchCategory queries the catalog for products tagged with the category
// slug, optionally scoped to a country. It returns one page of up to 50 hits
// mapped into typed candidates.
func (c *Client) SearchCategory(ctx context.Context, slug, country string) ([]models.Candidate, error) {
	query := url.Values{}
	query.Set("action", "process")
	query.Set("json", "1")
	query.Set("tagtype_0", "categories")
	query.Set("tag_contains_0", "contains")
	query.Set("tag_0", slug)
	if country != "" {
		query.Set("tagtype_1", "countries")
		query.Set("tag_contains_1", "contains")
		query.Set("tag_1", country)
	}
	query.Set("fields", searchFields)
	query.Set("page_size", strconv.Itoa(searchPageSize))

	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, query.Encode())

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("category search %q: %w", slug, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("category search %q: unexpected status %d", slug, status)
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("category search %q: decode: %w", slug, err)
	}

	candidates := make([]models.Candidate, 0, len(response.Products))
	for _, raw := range response.Products {
		candidates = append(candidates, raw.toCandidate())
	}
	return candidates, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
