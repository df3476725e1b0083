// Package client provides an HTTP client for the plotmark REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mkessler/plotmark/internal/geo"
	"github.com/mkessler/plotmark/internal/places"
	"github.com/mkessler/plotmark/internal/property"
	"github.com/mkessler/plotmark/internal/shape"
)

// Client is an HTTP client for the plotmark API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ShowResponse is the response from GET /api/properties/{id}.
type ShowResponse struct {
	Property *property.Property `json:"property"`
	Shapes   []shape.Shape      `json:"shapes"`
}

// ListOptions controls filtering for ListProperties.
type ListOptions struct {
	PropertyType string
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
}

// ListProperties returns all properties, optionally filtered.
func (c *Client) ListProperties(opts ListOptions) ([]*property.Property, error) {
	path := "/api/properties"
	var params []string
	if opts.PropertyType != "" {
		params = append(params, "type="+opts.PropertyType)
	}
	if opts.Location != "" {
		params = append(params, "location="+opts.Location)
	}
	if opts.MinPrice != nil {
		params = append(params, fmt.Sprintf("min_price=%g", *opts.MinPrice))
	}
	if opts.MaxPrice != nil {
		params = append(params, fmt.Sprintf("max_price=%g", *opts.MaxPrice))
	}
	if opts.Featured != nil {
		params = append(params, "featured="+strconv.FormatBool(*opts.Featured))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var props []*property.Property
	if err := c.get(path, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a property with its stored shapes.
func (c *Client) GetProperty(id int64) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get(fmt.Sprintf("/api/properties/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddProperty creates a property.
func (c *Client) AddProperty(p *property.Property) (*property.Property, error) {
	var saved property.Property
	if err := c.post("/api/properties", p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/properties/%d", id))
}

// GetShapes returns a property's shape set.
func (c *Client) GetShapes(id int64) ([]shape.Shape, error) {
	var resp struct {
		Shapes []shape.Shape `json:"shapes"`
	}
	if err := c.get(fmt.Sprintf("/api/properties/%d/shapes", id), &resp); err != nil {
		return nil, err
	}
	return resp.Shapes, nil
}

// SaveShapes replaces a property's shape set. A non-nil center also updates
// the property's coordinates.
func (c *Client) SaveShapes(id int64, shapes []shape.Shape, center *geo.Point) (int, error) {
	body := map[string]interface{}{"shapes": shapes}
	if center != nil {
		body["center"] = center
	}
	var resp struct {
		Saved int `json:"saved"`
	}
	if err := c.put(fmt.Sprintf("/api/properties/%d/shapes", id), body, &resp); err != nil {
		return 0, err
	}
	return resp.Saved, nil
}

// Nearby returns distance-annotated places around a property. radiusMeters of
// zero uses the server default.
func (c *Client) Nearby(id int64, category string, radiusMeters int) ([]places.Place, error) {
	path := fmt.Sprintf("/api/properties/%d/nearby?category=%s", id, category)
	if radiusMeters > 0 {
		path += fmt.Sprintf("&radius=%d", radiusMeters)
	}
	var resp struct {
		Places []places.Place `json:"places"`
	}
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Places, nil
}

// ImportResult reports the outcome of a bulk import upload.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// Import uploads an xlsx workbook for bulk property import.
func (c *Client) Import(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing workbook: %v\n", cerr)
		}
	}()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result ImportResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	return c.send("POST", path, body, result)
}

// put performs a PUT request with a JSON body and decodes the response.
func (c *Client) put(path string, body interface{}, result interface{}) error {
	return c.send("PUT", path, body, result)
}

func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
