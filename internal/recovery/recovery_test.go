package recovery

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoRetriesTransientOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{Retries: 1, Backoff: time.Millisecond}, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return NewError("textgen", KindTransient, errors.New("timeout"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoDoesNotRetryQuotaOrAuth(t *testing.T) {
	for _, kind := range []Kind{KindQuota, KindAuth, KindValidation} {
		calls := 0
		err := Do(context.Background(), Policy{Retries: 3, Backoff: time.Millisecond}, func(ctx context.Context) error {
			calls++
			return NewError("imagesearch", kind, errors.New("rejected"))
		})
		if err == nil {
			t.Fatalf("kind %s: expected error", kind)
		}
		if calls != 1 {
			t.Fatalf("kind %s: expected 1 call, got %d", kind, calls)
		}
	}
}

func TestDoGivesUpAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{Retries: 1, Backoff: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return errors.New("network down")
	})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestKindOfUnclassifiedIsTransient(t *testing.T) {
	if k := KindOf(errors.New("mystery")); k != KindTransient {
		t.Fatalf("expected transient, got %s", k)
	}
	wrapped := NewError("textgen", KindQuota, errors.New("limit"))
	if k := KindOf(wrapped); k != KindQuota {
		t.Fatalf("expected quota, got %s", k)
	}
}

func TestGateTripsOnTerminalOnly(t *testing.T) {
	g := NewGate()
	if !g.Open("imagesearch") {
		t.Fatalf("gate should start open")
	}

	g.RecordFailure("imagesearch", NewError("imagesearch", KindTransient, errors.New("timeout")))
	if !g.Open("imagesearch") {
		t.Fatalf("transient failure must not trip the gate")
	}

	g.RecordFailure("imagesearch", NewError("imagesearch", KindAuth, errors.New("bad credential")))
	if g.Open("imagesearch") {
		t.Fatalf("auth failure must trip the gate")
	}
	if g.Open("textgen") != true {
		t.Fatalf("other capabilities must stay open")
	}
}

func TestRecorderCollectsWarnings(t *testing.T) {
	r := NewRecorder()
	r.Add("Introduction", "textgen", NewError("textgen", KindQuota, errors.New("quota exceeded")))
	r.Add("", "imagesearch", errors.New("download failed"))

	ws := r.Warnings()
	if len(ws) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(ws))
	}
	if ws[0].Kind != KindQuota || ws[0].Section != "Introduction" {
		t.Fatalf("unexpected first warning: %+v", ws[0])
	}
	if ws[1].Kind != KindTransient {
		t.Fatalf("unclassified warning should be transient: %+v", ws[1])
	}
}
