package frames

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Fetcher opens the raw bytes behind a frame locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (io.ReadCloser, error)
}

// Decoder turns fetched bytes into an image.
type Decoder func(r io.Reader) (image.Image, error)

// DecodeImage decodes any registered format (JPEG, PNG, BMP, WebP).
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// FileFetcher reads locators as paths on the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(locator)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", locator, err)
	}
	return f, nil
}

// FSFetcher reads locators from an fs.FS (embedded data, tests).
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := f.FS.Open(path.Clean(strings.TrimPrefix(locator, "./")))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", locator, err)
	}
	return file, nil
}

// HTTPFetcher downloads locators with a GET request.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient. No timeout is applied unless the
	// client carries one.
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", locator, err)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", locator, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", locator, resp.Status)
	}
	return resp.Body, nil
}

// RoutingFetcher sends http(s) locators to Remote and everything else to Local.
type RoutingFetcher struct {
	Local  Fetcher
	Remote Fetcher
}

// NewRoutingFetcher returns a fetcher for local paths and http(s) URLs.
func NewRoutingFetcher() *RoutingFetcher {
	return &RoutingFetcher{
		Local:  FileFetcher{},
		Remote: HTTPFetcher{},
	}
}

func (r *RoutingFetcher) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	if IsRemote(locator) {
		return r.Remote.Fetch(ctx, locator)
	}
	return r.Local.Fetch(ctx, locator)
}

// IsRemote reports whether the locator is an http or https URL.
func IsRemote(locator string) bool {
	l := strings.ToLower(locator)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
