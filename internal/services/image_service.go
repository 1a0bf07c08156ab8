package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// ImageBucket holds archival copies of scraped product images. Startup
// wiring ensures it exists before the first upload.
const ImageBucket = "gift-images"

const (
	imageFetchTimeout  = 10 * time.Second
	imageFetchMaxBytes = 2 << 20 // page bytes scanned for og:image
	userAgent          = "Mozilla/5.0 (compatible; GiftNest/1.0)"
)

// Retailers that block scrapers or serve bot walls. The UI embeds these in
// an iframe instead of showing a scraped image.
var blockedDomainMarkers = []string{"amazon.", "walmart.", "target.", "bestbuy."}

type ImageFetchResult struct {
	ImageURL   string `json:"image_url,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
	Fallback   string `json:"fallback,omitempty"`
	ProductURL string `json:"product_url"`
}

// ImageService resolves a product page to a preview image via its og:image
// tag. Results are best-effort; a page with no usable image yields an empty
// ImageURL, not an error.
type ImageService interface {
	FetchProductImage(ctx context.Context, productURL string) (*ImageFetchResult, error)
}

type imageService struct {
	client  *http.Client
	storage ObjectStorage // nil disables archival
}

func NewImageService(storage ObjectStorage) ImageService {
	return &imageService{
		client:  &http.Client{Timeout: imageFetchTimeout},
		storage: storage,
	}
}

func (s *imageService) FetchProductImage(ctx context.Context, productURL string) (*ImageFetchResult, error) {
	parsed, err := url.Parse(strings.TrimSpace(productURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid product URL")
	}

	result := &ImageFetchResult{ProductURL: parsed.String()}

	if isBlockedDomain(parsed.Hostname()) {
		result.Fallback = "iframe"
		return result, nil
	}

	imageURL, err := s.scrapeOGImage(ctx, parsed.String())
	if err != nil {
		log.Printf("WARN: image scrape failed for %s: %v", parsed.Host, err)
		result.Fallback = "iframe"
		return result, nil
	}
	if imageURL == "" {
		result.Fallback = "iframe"
		return result, nil
	}

	result.ImageURL = imageURL
	result.ArchiveURL = s.archive(ctx, imageURL)
	return result, nil
}

func isBlockedDomain(hostname string) bool {
	hostname = strings.ToLower(hostname)
	for _, marker := range blockedDomainMarkers {
		if strings.Contains(hostname, marker) {
			return true
		}
	}
	return false
}

// scrapeOGImage fetches the page and tokenizes the HTML until it finds
// <meta property="og:image" content="...">. Head-only in practice, since
// og tags live there, but the scan is bounded either way.
func (s *imageService) scrapeOGImage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %d", resp.StatusCode)
	}

	tokenizer := html.NewTokenizer(io.LimitReader(resp.Body, imageFetchMaxBytes))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "", nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "meta" {
				continue
			}
			var property, content string
			for _, attr := range token.Attr {
				switch attr.Key {
				case "property", "name":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if property == "og:image" && content != "" {
				return content, nil
			}
		}
	}
}

// archive copies the scraped image into object storage and returns a
// presigned URL. Failures fall back to the remote URL silently.
func (s *imageService) archive(ctx context.Context, imageURL string) string {
	if s.storage == nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("WARN: failed to download image for archive: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	objectName := fmt.Sprintf("scraped/%s", uuid.New().String())
	contentType := resp.Header.Get("Content-Type")
	if err := s.storage.UploadImage(ctx, ImageBucket, objectName, resp.Body, resp.ContentLength, contentType); err != nil {
		log.Printf("WARN: failed to archive image: %v", err)
		return ""
	}

	archiveURL, err := s.storage.GetPresignedURL(ImageBucket, objectName, 7*24*time.Hour)
	if err != nil {
		log.Printf("WARN: failed to presign archived image: %v", err)
		return ""
	}
	return archiveURL
}
