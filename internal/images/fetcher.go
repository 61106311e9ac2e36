// Package images downloads, validates, and size-normalizes candidate images.
// An ImageAsset only exists after validation; anything that fails download,
// decoding, or the configured limits is skipped, never partially stored.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/imagesearch"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
	"github.com/SarthakNawali/ai-word-generator/internal/security"
)

// Capability is the name used in warnings for download failures.
const Capability = "imagedownload"

const (
	maxCaptionRunes = 80
	minPayloadBytes = 1024
	jpegQuality     = 85
)

// Limits bound every accepted asset.
type Limits struct {
	MaxBytes     int64
	MaxDimension int
	MinDimension int
	Timeout      time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxBytes:     5 << 20,
		MaxDimension: 800,
		MinDimension: 100,
		Timeout:      15 * time.Second,
	}
}

// Fetcher downloads and validates single images.
type Fetcher struct {
	client       *http.Client
	limits       Limits
	validateURLs bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithoutURLValidation disables the SSRF guard; tests fetching from loopback
// servers use it.
func WithoutURLValidation() FetcherOption {
	return func(f *Fetcher) { f.validateURLs = false }
}

func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

func NewFetcher(limits Limits, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:       &http.Client{Timeout: limits.Timeout},
		limits:       limits,
		validateURLs: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads one candidate and returns a validated, size-normalized
// asset. All failures are Validation or Transient; callers skip and move on.
func (f *Fetcher) Fetch(ctx context.Context, query string, cand imagesearch.Candidate) (*document.ImageAsset, error) {
	if f.validateURLs {
		if err := security.ValidateFetchURL(cand.URL); err != nil {
			return nil, recovery.NewError(Capability, recovery.KindValidation, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cand.URL, nil)
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindValidation, err)
	}
	req.Header.Set("Accept", "image/jpeg,image/png,image/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindTransient,
			fmt.Errorf("download failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, recovery.NewError(Capability, recovery.KindTransient,
			fmt.Errorf("download returned status %d", resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !allowedContentType(ct) {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("unsupported content type %q", ct))
	}

	// Read one byte past the cap so oversized payloads are detected without
	// trusting Content-Length.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.limits.MaxBytes+1))
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindTransient,
			fmt.Errorf("download read failed: %w", err))
	}
	if int64(len(data)) > f.limits.MaxBytes {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("image exceeds %d byte limit", f.limits.MaxBytes))
	}
	if len(data) < minPayloadBytes {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("image payload too small (%d bytes)", len(data)))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("image decode failed: %w", err))
	}
	if format != "jpeg" && format != "png" {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("unsupported image format %q", format))
	}

	img, data, format, err = f.normalize(img, data, format)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() < f.limits.MinDimension || bounds.Dy() < f.limits.MinDimension {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("image %dx%d below %dpx minimum", bounds.Dx(), bounds.Dy(), f.limits.MinDimension))
	}

	return &document.ImageAsset{
		Query:   query,
		Data:    data,
		Format:  document.ImageFormat(format),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Caption: truncateCaption(cand.Title),
	}, nil
}

// normalize scales images above the dimension cap and re-encodes them as
// JPEG. Images already within limits keep their original bytes and format.
func (f *Fetcher) normalize(img image.Image, data []byte, format string) (image.Image, []byte, string, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= f.limits.MaxDimension {
		return img, data, format, nil
	}

	ratio := float64(f.limits.MaxDimension) / float64(longest)
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)

	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, nil, "", recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("image re-encode failed: %w", err))
	}
	return scaled, buf.Bytes(), "jpeg", nil
}

func allowedContentType(ct string) bool {
	ct = strings.ToLower(ct)
	for _, allowed := range []string{"image/jpeg", "image/jpg", "image/png"} {
		if strings.Contains(ct, allowed) {
			return true
		}
	}
	return false
}

func truncateCaption(title string) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) <= maxCaptionRunes {
		return string(runes)
	}
	return string(runes[:maxCaptionRunes-3]) + "..."
}
