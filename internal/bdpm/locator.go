// Package bdpm looks up official product-label documents (RCP) on the French
// public drug database by scraping its search result page.
//
// This is unauthenticated scraping of external HTML, not a stable API, so it
// is inherently fragile to upstream markup changes. The one guarantee is
// "first matching link wins" — no ranking or validation of the match is done.
package bdpm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"promocheck/internal/logger"
	"promocheck/pkg/models"
)

const (
	// documentSuffix selects reference-document hyperlinks on the result page.
	documentSuffix = ".pdf"

	// maxDownloadBytes caps how much of a matched document is fetched.
	maxDownloadBytes = 50 * 1024 * 1024
)

// Service queries the registry and downloads the first matching document.
type Service struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewService creates a locator against the given registry base URL.
func NewService(baseURL string, timeout time.Duration) *Service {
	return NewServiceWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewServiceWithClient creates a locator with an explicit HTTP client (for testing).
func NewServiceWithClient(baseURL string, client *http.Client) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logger.WithComponent("bdpm"),
	}
}

// Locate searches the registry for the product name and downloads the first
// hyperlinked document whose path ends in ".pdf". A (nil, nil) return means
// the lookup completed but found no matching document.
func (s *Service) Locate(ctx context.Context, productName string) (*models.ReferenceDocument, error) {
	const op = "Locate"

	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, nil
	}

	searchURL := fmt.Sprintf("%s/index.php?page=1&affliste=0&txtCaracteres=%s", s.baseURL, url.QueryEscape(productName))
	s.log.Info().
		Str("product", productName).
		Str("url", searchURL).
		Msg("Searching registry")

	page, finalURL, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, WrapLocateError(op, ErrSearchFailed, err.Error())
	}

	docURL, err := firstDocumentLink(page, finalURL)
	if err != nil {
		return nil, WrapLocateError(op, ErrParseFailed, err.Error())
	}
	if docURL == "" {
		s.log.Warn().Str("product", productName).Msg("No reference document link on result page")
		return nil, nil
	}

	s.log.Info().Str("url", docURL).Msg("Downloading reference document")
	docBytes, _, err := s.get(ctx, docURL)
	if err != nil {
		return nil, WrapLocateError(op, ErrDownloadFailed, err.Error())
	}

	s.log.Info().
		Str("product", productName).
		Str("url", docURL).
		Int("bytes", len(docBytes)).
		Msg("Reference document retrieved")
	return &models.ReferenceDocument{
		SourceURL: docURL,
		Bytes:     docBytes,
	}, nil
}

// get fetches a URL and returns the body plus the final (post-redirect) URL.
func (s *Service) get(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "promocheck/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, nil, err
	}
	return body, resp.Request.URL, nil
}

// firstDocumentLink scans the page's hyperlinks and returns the first one
// whose target path ends in the document suffix, resolved against the page URL.
func firstDocumentLink(page []byte, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		return "", err
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		target, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		if !strings.HasSuffix(strings.ToLower(target.Path), documentSuffix) {
			return true
		}
		if pageURL != nil {
			target = pageURL.ResolveReference(target)
		}
		found = target.String()
		return false
	})
	return found, nil
}
