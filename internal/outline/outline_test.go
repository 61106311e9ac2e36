package outline

import (
	"reflect"
	"testing"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

func TestPlanDefaultOutline(t *testing.T) {
	titles, err := Plan(document.ProjectSpec{TargetPages: 15})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !reflect.DeepEqual(titles, DefaultOutline) {
		t.Fatalf("expected default outline, got %v", titles)
	}
}

func TestPlanCustomOutlineVerbatim(t *testing.T) {
	spec := document.ProjectSpec{
		TargetPages:   10,
		CustomOutline: []string{"Background", "Findings", "Findings"},
	}
	titles, err := Plan(spec)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := []string{"Background", "Findings", "Findings"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("custom outline not preserved: %v", titles)
	}
}

func TestPlanRejectsPageTargetOutOfRange(t *testing.T) {
	for _, pages := range []int{0, 4, 51} {
		_, err := Plan(document.ProjectSpec{TargetPages: pages})
		if err == nil {
			t.Fatalf("pages=%d: expected error", pages)
		}
		if recovery.KindOf(err) != recovery.KindStructural {
			t.Fatalf("pages=%d: expected structural error, got %v", pages, recovery.KindOf(err))
		}
	}
}

func TestPlanRejectsBlankCustomOutline(t *testing.T) {
	_, err := Plan(document.ProjectSpec{TargetPages: 10, CustomOutline: []string{"  ", ""}})
	if err == nil {
		t.Fatalf("expected structural error for blank custom outline")
	}
}

func TestBudgetBoundsProduceNonDegenerateTargets(t *testing.T) {
	for _, pages := range []int{MinPages, MaxPages} {
		spec := document.ProjectSpec{TargetPages: pages}
		titles, err := Plan(spec)
		if err != nil {
			t.Fatalf("plan(%d): %v", pages, err)
		}
		budgets, err := Budget(spec, titles)
		if err != nil {
			t.Fatalf("budget(%d): %v", pages, err)
		}
		for i, b := range budgets {
			if document.IsReferences(titles[i]) {
				if b != 0 {
					t.Fatalf("pages=%d: references section got budget %d", pages, b)
				}
				continue
			}
			if b <= 0 {
				t.Fatalf("pages=%d: section %q got non-positive budget", pages, titles[i])
			}
		}
	}
}

func TestBudgetExcludesReferences(t *testing.T) {
	spec := document.ProjectSpec{TargetPages: 10}
	titles := []string{"Background", "references"}
	budgets, err := Budget(spec, titles)
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if budgets[1] != 0 {
		t.Fatalf("references should not be budgeted, got %d", budgets[1])
	}
	if budgets[0] <= 0 {
		t.Fatalf("generative section should have positive budget")
	}
}

func TestBudgetAllReferencesIsStructural(t *testing.T) {
	_, err := Budget(document.ProjectSpec{TargetPages: 10}, []string{"References"})
	if err == nil {
		t.Fatalf("expected structural error when no generative sections remain")
	}
}
