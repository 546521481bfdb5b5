package usaspending

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

	"go.uber.org/zap"
)

// DefaultBaseURL is the versioned API root of api.usaspending.gov.
const DefaultBaseURL = "https://api.usaspending.gov/api/v2"

const userAgent = "usaspending-analytics/1.0"

type Client struct {
	base string
	hc   *http.Client
	log  *zap.Logger
}

// NewHTTPClient returns the keep-alive client shared by every lookup of a run.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func NewClient(base string, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = NewHTTPClient(60 * time.Second)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   hc,
		log:  log,
	}
}

func (c *Client) ToptierAgencies(ctx context.Context) ([]Agency, error) {
	var resp struct {
		Results []Agency `json:"results"`
	}
	if err := c.getJSON(ctx, "references/toptier_agencies/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// States lists every state-like recipient entity (states, territories, DC)
// in the order the service returns them.
func (c *Client) States(ctx context.Context) ([]State, error) {
	var out []State
	if err := c.getJSON(ctx, "recipient/state/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StateDetails(ctx context.Context, fips string, year int) (StateDetails, error) {
	var out StateDetails
	q := url.Values{"year": {strconv.Itoa(year)}}
	err := c.getJSON(ctx, "recipient/state/"+url.PathEscape(fips)+"/", q, &out)
	return out, err
}

func (c *Client) StateAwards(ctx context.Context, fips string, fiscalYear int) ([]AwardSummary, error) {
	var out []AwardSummary
	q := url.Values{"fiscal_year": {strconv.Itoa(fiscalYear)}}
	if err := c.getJSON(ctx, "recipient/state/awards/"+url.PathEscape(fips)+"/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BudgetaryResources(ctx context.Context, code string) ([]BudgetaryResourcesByYear, error) {
	var resp struct {
		AgencyDataByYear []BudgetaryResourcesByYear `json:"agency_data_by_year"`
	}
	if err := c.getJSON(ctx, "agency/"+url.PathEscape(code)+"/budgetary_resources/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.AgencyDataByYear, nil
}

func (c *Client) NewAwardCount(ctx context.Context, code string, fiscalYear int) (NewAwardCount, error) {
	var out NewAwardCount
	q := url.Values{"fiscal_year": {strconv.Itoa(fiscalYear)}}
	err := c.getJSON(ctx, "agency/"+url.PathEscape(code)+"/awards/new/count/", q, &out)
	return out, err
}

// AgencyCode resolves an agency abbreviation (e.g. "NASA") to its toptier code.
// The match is exact.
func (c *Client) AgencyCode(ctx context.Context, abbreviation string) (string, error) {
	agencies, err := c.ToptierAgencies(ctx)
	if err != nil {
		return "", err
	}
	for _, a := range agencies {
		if a.Abbreviation == abbreviation {
			return a.ToptierCode, nil
		}
	}
	return "", &NotFoundError{Kind: "agency", Key: abbreviation}
}

// StateFIPS resolves a state name to its FIPS code, ignoring case.
func (c *Client) StateFIPS(ctx context.Context, name string) (string, error) {
	states, err := c.States(ctx)
	if err != nil {
		return "", err
	}
	for _, s := range states {
		if strings.EqualFold(s.Name, name) {
			return s.FIPS, nil
		}
	}
	return "", &NotFoundError{Kind: "state", Key: name}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	u := c.base + "/" + strings.TrimLeft(endpoint, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("url", u), zap.Error(err))
		return err
	}
	defer res.Body.Close()
	c.log.Debug("request",
		zap.String("path", req.URL.Path),
		zap.String("query", req.URL.RawQuery),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{Method: http.MethodGet, URL: u, StatusCode: res.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}
