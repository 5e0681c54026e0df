package job

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPages        = 3
	// A page filled below this fraction of the requested size is treated
	// as the end of results.
	earlyStopFraction = 0.6
	pageTimeout       = 5 * time.Second

	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// pageResponse is the paginated envelope returned by a board API.
type pageResponse struct {
	Items   []any `json:"items"`
	Found   int   `json:"found"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
}

// HTTPSource queries a JSON job board API page by page. Each page request
// gets a bounded timeout and a single attempt.
type HTTPSource struct {
	name     string
	endpoint string
	logger   *zap.Logger

	HTTPClient *http.Client
	UserAgent  string
	PageSize   int
}

func NewHTTPSource(name, endpoint string, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		name:     name,
		endpoint: endpoint,
		logger:   logger,
		HTTPClient: &http.Client{
			Timeout: pageTimeout,
		},
		PageSize: defaultPageSize,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

// Fetch retrieves up to maxPages pages for the keyword/location pair,
// stopping early once a page comes back mostly empty.
func (s *HTTPSource) Fetch(ctx context.Context, keyword, location string) ([]*RawListing, error) {
	var out []*RawListing

	for page := 0; page < maxPages; page++ {
		response, err := s.fetchPage(ctx, keyword, location, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		listings, err := decodeItems(response.Items)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		out = append(out, listings...)

		if len(listings) < int(earlyStopFraction*float64(s.PageSize)) {
			s.logger.Debug("stopping pagination",
				zap.String("source", s.name),
				zap.Int("page", page),
				zap.Int("items", len(listings)),
			)
			break
		}
	}

	return out, nil
}

func (s *HTTPSource) fetchPage(ctx context.Context, keyword, location string, page int) (*pageResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("text", keyword)
	q.Set("location", location)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(s.PageSize))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	s.logger.Debug("fetching page", zap.String("source", s.name), zap.String("url", req.URL.String()))

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return parsePageResponse(resp)
}

func parsePageResponse(resp *http.Response) (*pageResponse, error) {
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.ReadCloser
	var err error
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		body, err = gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		defer resp.Body.Close()
		defer body.Close()
	default:
		body = resp.Body
		defer body.Close()
	}

	var response *pageResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	return response, nil
}

func decodeItems(items []any) ([]*RawListing, error) {
	var listings []*RawListing

	cfg := &mapstructure.DecoderConfig{
		Result:  &listings,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	return listings, nil
}
