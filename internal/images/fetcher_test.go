package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/imagesearch"
)

// testImage builds a noisy image so encoded payloads stay above the minimum
// size check.
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*7 + y*13) % 256),
				G: uint8((x*3 + y*5) % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func serveBytes(t *testing.T, contentType string, data []byte) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func testFetcher() *Fetcher {
	return NewFetcher(DefaultLimits(), WithoutURLValidation())
}

func TestFetchValidPNG(t *testing.T) {
	url := serveBytes(t, "image/png", encodePNG(t, testImage(300, 200)))

	asset, err := testFetcher().Fetch(context.Background(), "topic", imagesearch.Candidate{URL: url, Title: "A diagram"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if asset.Format != document.FormatPNG {
		t.Fatalf("expected png, got %s", asset.Format)
	}
	if asset.Width != 300 || asset.Height != 200 {
		t.Fatalf("unexpected dimensions %dx%d", asset.Width, asset.Height)
	}
	if asset.Caption != "A diagram" {
		t.Fatalf("unexpected caption %q", asset.Caption)
	}
}

func TestFetchResizesOversizedImage(t *testing.T) {
	url := serveBytes(t, "image/jpeg", encodeJPEG(t, testImage(1200, 900)))

	asset, err := testFetcher().Fetch(context.Background(), "topic", imagesearch.Candidate{URL: url})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if asset.Width != 800 || asset.Height != 600 {
		t.Fatalf("expected 800x600 after resize, got %dx%d", asset.Width, asset.Height)
	}
	if asset.Format != document.FormatJPEG {
		t.Fatalf("resized images are re-encoded as jpeg, got %s", asset.Format)
	}
}

func TestFetchRejectsInvalidAssets(t *testing.T) {
	big := make([]byte, (5<<20)+10)
	cases := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{"too small dimensions", "image/png", encodePNG(t, testImage(50, 50))},
		{"not an image", "image/png", bytes.Repeat([]byte("junk"), 1000)},
		{"tiny payload", "image/png", []byte("x")},
		{"wrong content type", "text/html", encodePNG(t, testImage(300, 200))},
		{"over byte limit", "image/png", big},
	}

	for _, tc := range cases {
		url := serveBytes(t, tc.contentType, tc.body)
		if _, err := testFetcher().Fetch(context.Background(), "q", imagesearch.Candidate{URL: url}); err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}

func TestFetchRejectsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	if _, err := testFetcher().Fetch(context.Background(), "q", imagesearch.Candidate{URL: srv.URL}); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestCaptionTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "words "
	}
	got := truncateCaption(long)
	if len([]rune(got)) != maxCaptionRunes {
		t.Fatalf("expected %d runes, got %d", maxCaptionRunes, len([]rune(got)))
	}
}

// stubEngine serves fixed candidates and counts calls.
type stubEngine struct {
	candidates []imagesearch.Candidate
	calls      atomic.Int32
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Search(context.Context, string, int) ([]imagesearch.Candidate, error) {
	s.calls.Add(1)
	return s.candidates, nil
}

func TestAcquireSkipsFailedCandidatesUpToCap(t *testing.T) {
	valid := encodePNG(t, testImage(300, 200))
	invalid := bytes.Repeat([]byte("garbage"), 500)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(valid)
	})
	mux.HandleFunc("/bad/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/junk/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(invalid)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// 5 candidates: 2 fail download, 1 fails validation, 2 valid.
	engine := &stubEngine{candidates: []imagesearch.Candidate{
		{URL: srv.URL + "/bad/1"},
		{URL: srv.URL + "/junk/2"},
		{URL: srv.URL + "/ok/3", Title: "first valid"},
		{URL: srv.URL + "/bad/4"},
		{URL: srv.URL + "/ok/5", Title: "second valid"},
	}}

	acq := NewAcquirer(engine, testFetcher())
	assets, err := acq.Acquire(context.Background(), "topic", 2)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected exactly 2 assets, got %d", len(assets))
	}
	if assets[0].Caption != "first valid" || assets[1].Caption != "second valid" {
		t.Fatalf("expected first two valid candidates in order, got %q, %q",
			assets[0].Caption, assets[1].Caption)
	}
}

func TestAcquireHonorsSearchBudget(t *testing.T) {
	engine := &stubEngine{}
	acq := NewAcquirer(engine, testFetcher())

	ctx := context.Background()
	for i := 0; i < MaxSearchCalls+5; i++ {
		if _, err := acq.Acquire(ctx, fmt.Sprintf("query %d", i), 2); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}

	if got := engine.calls.Load(); got != MaxSearchCalls {
		t.Fatalf("engine should see exactly %d calls, got %d", MaxSearchCalls, got)
	}
	if acq.RemainingSearches() != 0 {
		t.Fatalf("expected zero remaining searches")
	}
}

func TestAcquireNeverExceedsPerCallCap(t *testing.T) {
	valid := encodePNG(t, testImage(300, 200))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(valid)
	}))
	t.Cleanup(srv.Close)

	var cands []imagesearch.Candidate
	for i := 0; i < 5; i++ {
		cands = append(cands, imagesearch.Candidate{URL: fmt.Sprintf("%s/%d", srv.URL, i)})
	}
	acq := NewAcquirer(&stubEngine{candidates: cands}, testFetcher())

	assets, err := acq.Acquire(context.Background(), "topic", 99)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if len(assets) != MaxPerCall {
		t.Fatalf("expected cap of %d assets, got %d", MaxPerCall, len(assets))
	}
}
