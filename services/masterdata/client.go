package masterdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"itrack_admin/models"

	"github.com/sirupsen/logrus"
)

const (
	countriesPath = "/settings/countries"
	statesPath    = "/settings/states"
	districtsPath = "/settings/districts"
	pincodesPath  = "/settings/pincodes"
	companiesPath = "/admin/companies"
	regionsPath   = "/masters/regions"

	defaultTimeout = 15 * time.Second
)

var (
	// ErrUnavailable wraps transport failures: timeouts, DNS, refused connections
	ErrUnavailable = errors.New("master data service unavailable")
	// ErrMalformedResponse is returned when a body cannot be decoded at all
	ErrMalformedResponse = errors.New("malformed master data response")
)

// APIError is a non-2xx answer from the Master Data Service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("master data service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("master data service returned %d: %s", e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status of an APIError, or 0 for any other error
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client talks to the Master Data Service on behalf of one credential.
// The zero token is valid: requests then go out without an Authorization header.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a client without a credential. Use WithToken to attach one per request.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// WithToken returns a copy of the client that sends the given bearer credential
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// hasToken reports whether requests will carry an Authorization header
func (c *Client) hasToken() bool {
	return c.token != ""
}

// envelope is the {data: ...} wrapper every endpoint answers with
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Caller-initiated cancellation is not a service failure
		if parentErr := context.Cause(ctx); errors.Is(parentErr, context.Canceled) {
			observe(method, path, outcomeCanceled, start)
			return nil, context.Canceled
		}
		observe(method, path, outcomeError, start)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(method, path, outcomeError, start)
		return nil, fmt.Errorf("%w: reading %s %s: %v", ErrUnavailable, method, path, err)
	}

	var env envelope
	var decodeErr error
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		// Some endpoints answer with a bare array instead of the envelope
		env.Data = trimmed
	} else {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observe(method, path, strconv.Itoa(resp.StatusCode), start)
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Master data request rejected")
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	observe(method, path, outcomeOK, start)

	if len(bytes.TrimSpace(raw)) == 0 {
		return &envelope{}, nil
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, decodeErr)
	}
	return &env, nil
}

// decodeList unpacks data into a slice. Missing, null or non-array data yields an empty list.
func decodeList[T any](env *envelope) []T {
	items := []T{}
	if env == nil || len(env.Data) == 0 {
		return items
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		logrus.WithError(err).Warn("Ignoring malformed list payload")
		return []T{}
	}
	// A JSON null resets the slice to nil
	if items == nil {
		return []T{}
	}
	return items
}

// ListCompanies returns every company
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	env, err := c.do(ctx, http.MethodGet, companiesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Company](env), nil
}

// ListCountries returns every country
func (c *Client) ListCountries(ctx context.Context) ([]models.Country, error) {
	env, err := c.do(ctx, http.MethodGet, countriesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Country](env), nil
}

// ListStates returns every state of every country
func (c *Client) ListStates(ctx context.Context) ([]models.State, error) {
	env, err := c.do(ctx, http.MethodGet, statesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.State](env), nil
}

// ListDistricts returns every district of every state
func (c *Client) ListDistricts(ctx context.Context) ([]models.District, error) {
	env, err := c.do(ctx, http.MethodGet, districtsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.District](env), nil
}

// ListPincodes returns the full pincode table with assignment flags
func (c *Client) ListPincodes(ctx context.Context) ([]models.Pincode, error) {
	env, err := c.do(ctx, http.MethodGet, pincodesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Pincode](env), nil
}

// ListRegions returns one server page of regions
func (c *Client) ListRegions(ctx context.Context, params *models.RegionListParams) (*models.RegionPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))

	env, err := c.do(ctx, http.MethodGet, regionsPath, query, nil)
	if err != nil {
		return nil, err
	}

	regions := decodeList[models.Region](env)
	total := len(regions)
	if env.Total != nil {
		total = *env.Total
	}

	return &models.RegionPage{
		Regions: regions,
		Total:   total,
		Page:    params.Page,
		Limit:   params.Limit,
	}, nil
}

// GetRegion fetches a single region together with its pincodes
func (c *Client) GetRegion(ctx context.Context, id string) (*models.Region, error) {
	env, err := c.do(ctx, http.MethodGet, regionsPath+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRegion(env, id)
}

// CreateRegion submits a new region
func (c *Client) CreateRegion(ctx context.Context, payload *models.RegionPayload) (*models.Region, error) {
	env, err := c.do(ctx, http.MethodPost, regionsPath, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRegion(env, "")
}

// UpdateRegion replaces an existing region
func (c *Client) UpdateRegion(ctx context.Context, id string, payload *models.RegionPayload) (*models.Region, error) {
	env, err := c.do(ctx, http.MethodPut, regionsPath+"/"+url.PathEscape(id), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRegion(env, id)
}

// DeleteRegion removes a region
func (c *Client) DeleteRegion(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, regionsPath+"/"+url.PathEscape(id), nil, nil)
	return err
}

// decodeRegion tolerates an empty or partial data object; the id falls back to the requested one
func decodeRegion(env *envelope, id string) (*models.Region, error) {
	region := &models.Region{}
	if env != nil && len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		if err := json.Unmarshal(env.Data, region); err != nil {
			return nil, fmt.Errorf("%w: region: %v", ErrMalformedResponse, err)
		}
	}
	if region.ID == "" {
		region.ID = models.FlexibleID(id)
	}
	if region.Pincodes == nil {
		region.Pincodes = models.PincodeList{}
	}
	return region, nil
}
