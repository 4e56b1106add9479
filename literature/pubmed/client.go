package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/literature"
	"golang.org/x/time/rate"
)

// Client implements literature.Index over NCBI E-utilities.
type Client struct {
	config  *Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ literature.Index = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithHTTPClient replaces the HTTP client. The configured timeout is not
// applied to a supplied client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client != nil {
			c.http = client
		}
		return nil
	}
}

// NewClient creates an E-utilities client.
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Limit(config.Rate()), 1),
		logger:  slog.Default().With("component", "pubmed"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Search runs esearch and returns the matching PMIDs, best match first.
// A blank query returns no identifiers without calling the service.
// A query NCBI rejects as malformed is logged and treated as having no
// matches. Any other esearch error is returned as ErrSearchFailed.
func (c *Client) Search(ctx context.Context, query string, maxResults int, filter literature.Filter) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" || maxResults <= 0 {
		return []string{}, nil
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	params := c.params()
	params.Set("db", "pubmed")
	params.Set("term", filteredTerm(query, filter))
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "xml")
	if filter.HasYearRange() {
		from, to := filter.FromYear, filter.ToYear
		if from == 0 {
			from = minPublicationYear
		}
		if to == 0 {
			to = maxPublicationYear
		}
		params.Set("datetype", "pdat")
		params.Set("mindate", strconv.Itoa(from))
		params.Set("maxdate", strconv.Itoa(to))
	}

	var result eSearchResult
	if err := c.get(ctx, "esearch.fcgi", params, &result); err != nil {
		return nil, err
	}

	if result.Error != "" {
		if !isQuerySyntaxError(result.Error) {
			c.logger.Error("esearch failed", "query", query, "error", result.Error)
			return nil, fmt.Errorf("%w: %s", ErrSearchFailed, result.Error)
		}
		c.logger.Warn("esearch rejected query", "query", query, "error", result.Error)
		return []string{}, nil
	}
	if len(result.Errors.PhraseNotFound) > 0 || len(result.Errors.FieldNotFound) > 0 {
		c.logger.Debug("esearch dropped terms",
			"phraseNotFound", result.Errors.PhraseNotFound,
			"fieldNotFound", result.Errors.FieldNotFound)
	}

	ids := literature.UniqueIDs(result.IDs)
	c.logger.Debug("esearch complete", "query", query, "count", result.Count, "returned", len(ids))
	return ids, nil
}

// Open ends of a publication-date range.
const (
	minPublicationYear = 1800
	maxPublicationYear = 3000
)

// filteredTerm ANDs query with an OR group of publication types.
func filteredTerm(query string, filter literature.Filter) string {
	types := filter.Types()
	if len(types) == 0 {
		return query
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = `"` + t + `"[pt]`
	}
	return "(" + query + ") AND (" + strings.Join(parts, " OR ") + ")"
}

// syntaxErrorMarkers are fragments of the esearch ERROR messages NCBI uses
// for queries it cannot parse.
var syntaxErrorMarkers = []string{
	"syntax",
	"invalid query",
	"empty term",
	"unable to parse",
	"unmatched",
	"quot",
	"parenthes",
}

func isQuerySyntaxError(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range syntaxErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Fetch runs efetch for ids in batches and converts each PubmedArticle.
// Records without a PMID are dropped. Repeated PMIDs keep the first record.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]core.Article, error) {
	ids = literature.UniqueIDs(ids)
	if len(ids) == 0 {
		return []core.Article{}, nil
	}

	var articles []core.Article
	for start := 0; start < len(ids); start += c.config.FetchBatchSize {
		end := min(start+c.config.FetchBatchSize, len(ids))

		params := c.params()
		params.Set("db", "pubmed")
		params.Set("id", strings.Join(ids[start:end], ","))
		params.Set("retmode", "xml")
		params.Set("rettype", "abstract")

		var set pubmedArticleSet
		if err := c.get(ctx, "efetch.fcgi", params, &set); err != nil {
			return nil, err
		}
		for i := range set.Articles {
			articles = append(articles, toArticle(&set.Articles[i]))
		}
	}

	cleaned, dropped := literature.CleanArticles(articles)
	if dropped > 0 {
		c.logger.Warn("dropped malformed records", "dropped", dropped, "err", core.ErrMalformedRecord)
	}
	c.logger.Debug("efetch complete", "requested", len(ids), "returned", len(cleaned))
	return cleaned, nil
}

func toArticle(a *pubmedArticle) core.Article {
	id := strings.TrimSpace(a.Citation.PMID)
	return core.Article{
		ID:       id,
		Title:    a.Citation.Article.Title.Text,
		Abstract: a.abstract(),
		Journal:  a.journal(),
		Authors:  a.authors(),
		Year:     a.year(),
		Link:     core.ArticleLink(id),
	}
}

func (c *Client) params() url.Values {
	params := url.Values{}
	if c.config.APIKey != "" {
		params.Set("api_key", c.config.APIKey)
	}
	if c.config.Tool != "" {
		params.Set("tool", c.config.Tool)
	}
	if c.config.Email != "" {
		params.Set("email", c.config.Email)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, into any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.config.BaseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("E-utilities request failed", "endpoint", endpoint, "err", err)
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("E-utilities returned error status", "endpoint", endpoint, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s returned HTTP %d", ErrHTTPStatus, endpoint, resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}
