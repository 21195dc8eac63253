// ABOUTME: Content source service supplying cached, versioned bookmark content
// ABOUTME: Fetches pages, extracts readable article markup and derives version ids

package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
	"github.com/samling-jackyjyo/hoarder-sub003/core/interfaces"
)

const (
	cacheTTL    = 1 * time.Hour
	maxBodySize = 5 * 1024 * 1024
)

// Service implements the ContentSource collaborator: it supplies sanitized
// article HTML plus a content-version identifier for a bookmark. Snapshots
// are cached; a refetch that changes the extracted HTML yields a new version.
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new content service
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// Get returns the current content snapshot for a bookmark URL
func (s *Service) Get(ctx context.Context, bookmarkID, pageURL string) (*domain.BookmarkContent, error) {
	cacheKey := "content:" + bookmarkID
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.BookmarkContent
			if err := json.Unmarshal(data, &cached); err == nil && cached.IsValid() {
				return &cached, nil
			}
		}
	}

	content, err := s.fetch(ctx, bookmarkID, pageURL)
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(content); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}
	return content, nil
}

func (s *Service) fetch(ctx context.Context, bookmarkID, pageURL string) (*domain.BookmarkContent, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "bookmark URL is not valid"}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to fetch bookmark content")
	}
	defer resp.Body().Close()

	if resp.StatusCode() >= 400 {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "content fetch failed",
			API:        parsedURL.Host,
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodySize))
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read bookmark content")
	}

	article, err := readability.FromReader(bytes.NewReader(raw), parsedURL)
	if err != nil {
		s.deps.Logger.Error("Readability extraction failed", map[string]interface{}{
			"bookmark": bookmarkID,
			"url":      pageURL,
			"error":    err.Error(),
		})
		return nil, coreerrors.WrapError(err, "failed to extract readable content")
	}

	sum := sha256.Sum256([]byte(article.Content))

	content := &domain.BookmarkContent{
		BookmarkID: bookmarkID,
		URL:        pageURL,
		Version:    hex.EncodeToString(sum[:]),
		Title:      article.Title,
		SiteName:   article.SiteName,
		Favicon:    article.Favicon,
		HTML:       article.Content,
		FetchedAt:  time.Now().UTC(),
	}

	s.fillMetadata(content, raw, parsedURL)

	// Markdown rendition is best effort; the snapshot is usable without it.
	converter := md.NewConverter("", true, nil)
	if markdown, err := converter.ConvertString(article.Content); err == nil {
		content.Markdown = strings.TrimSpace(markdown)
	} else {
		s.deps.Logger.Debug("Markdown conversion failed", map[string]interface{}{
			"bookmark": bookmarkID,
			"error":    err.Error(),
		})
	}

	return content, nil
}

// fillMetadata supplements readability output with tags scraped from the raw
// page head: og:site_name, <title> and the favicon link.
func (s *Service) fillMetadata(content *domain.BookmarkContent, raw []byte, pageURL *url.URL) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return
	}

	if content.Title == "" {
		content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if content.SiteName == "" {
		if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
			content.SiteName = strings.TrimSpace(v)
		}
	}
	if content.Favicon == "" {
		if href, ok := doc.Find(`link[rel="icon"], link[rel="shortcut icon"]`).First().Attr("href"); ok {
			content.Favicon = resolveURL(pageURL, href)
		} else {
			content.Favicon = fmt.Sprintf("%s://%s/favicon.ico", pageURL.Scheme, pageURL.Host)
		}
	}
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
