// Package metadata fetches a submitted tool's page and pulls out title and
// description candidates, used to fill blank submission fields before the
// record is persisted.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yeai-tech/catalog-api/internal/logger"
)

// defaultHTTPTimeout bounds the prefill fetch; the submission flow treats a
// slow page as "no metadata", never as a failure.
const defaultHTTPTimeout = 10 * time.Second

// PageMetadata holds the extracted suggestions.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Extractor fetches pages and extracts metadata.
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

func NewExtractor(log logger.Logger, client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Extractor{
		logger: log,
		client: client,
	}
}

// Extract fetches the URL and extracts title/description suggestions.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*PageMetadata, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent to avoid bot blocking
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; YeaiCatalog/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := &PageMetadata{
		Title:       extractTitle(doc, parsedURL),
		Description: extractDescription(doc),
	}

	e.logger.Debug("Metadata extraction complete",
		logger.String("url", pageURL),
		logger.String("title", meta.Title),
	)

	return meta, nil
}

// extractTitle picks a page title by priority: og:title, og:site_name,
// <title>, then the host name.
func extractTitle(doc *goquery.Document, parsedURL *url.URL) string {
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && ogTitle != "" {
		return ogTitle
	}

	if ogSite, exists := doc.Find("meta[property='og:site_name']").Attr("content"); exists && ogSite != "" {
		return ogSite
	}

	if title := doc.Find("title").First().Text(); title != "" {
		return strings.TrimSpace(title)
	}

	return parsedURL.Host
}

// extractDescription prefers og:description over the standard meta tag.
func extractDescription(doc *goquery.Document) string {
	if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists && ogDesc != "" {
		return strings.TrimSpace(ogDesc)
	}

	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		return strings.TrimSpace(desc)
	}

	return ""
}
