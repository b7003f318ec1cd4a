package analysis

import (
	"reflect"
	"testing"
)

func TestPipelineServiceCarryOver(t *testing.T) {
	all := scenarioReviews(t)
	p := NewPipeline(nil, DefaultWordOptions(), PolicyCarryOver)
	base := p.Baseline(all)

	q := DefaultQuery()
	q.Criteria.Category = "Service"
	res := p.Run(all, q, base)
	if len(res.Reviews) != 1 || res.Reviews[0].Reviewer != "Ann" {
		t.Fatalf("reviews = %v", rows(res.Reviews))
	}
	want := []WordEntry{{"service", 1}}
	if !reflect.DeepEqual(res.Words, want) {
		t.Fatalf("words = %v, want %v", res.Words, want)
	}

	// A previous list without "service" narrows to nothing.
	q0 := DefaultQuery()
	q0.Criteria.Rating = 1
	first := p.Run(all, q0, base)
	if !reflect.DeepEqual(first.Words, []WordEntry{{"poor", 1}}) {
		t.Fatalf("rating pass words = %v", first.Words)
	}
	res = p.Run(all, q, first.Words)
	if res.Words == nil || len(res.Words) != 0 {
		t.Fatalf("words = %#v, want empty", res.Words)
	}
}

func TestPipelineNarrowingChains(t *testing.T) {
	all := sampleReviews(t)
	p := NewPipeline(DefaultCategories(), DefaultWordOptions(), PolicyCarryOver)
	prev := p.Baseline(all)

	q := DefaultQuery()
	q.Criteria.Category = "Technical"
	tech := p.Run(all, q, prev)
	if !reflect.DeepEqual(tech.Words, []WordEntry{{"attic", 2}, {"insulation", 1}, {"foam", 1}}) {
		t.Fatalf("technical words = %v", tech.Words)
	}
	q.Criteria.Category = "Service"
	svc := p.Run(all, q, tech.Words)
	if len(svc.Words) != 0 {
		t.Fatalf("chained narrowing = %v, want empty", svc.Words)
	}
	if len(svc.Reviews) != 2 {
		t.Fatalf("service reviews = %v", rows(svc.Reviews))
	}

	q.Criteria.Category = CategoryAll
	again := p.Run(all, q, svc.Words)
	if !reflect.DeepEqual(again.Words, prev) {
		t.Fatalf("All should recompute: %v", again.Words)
	}
}

func TestPipelineRecompute(t *testing.T) {
	all := sampleReviews(t)
	p := NewPipeline(nil, DefaultWordOptions(), PolicyRecompute)
	q := DefaultQuery()
	q.Criteria.Category = "Service"
	res := p.Run(all, q, nil)
	if !reflect.DeepEqual(res.Words, p.Words.Analyze(res.Reviews)) {
		t.Fatalf("recompute words = %v", res.Words)
	}
	found := map[string]bool{}
	for _, w := range res.Words {
		found[w.Word] = true
	}
	if !found["service"] || !found["temperature"] || found["attic"] {
		t.Fatalf("recompute should count only service reviews: %v", res.Words)
	}
}

func TestPipelineUnknownCategory(t *testing.T) {
	all := sampleReviews(t)
	p := NewPipeline(nil, DefaultWordOptions(), "")
	if p.Policy != PolicyCarryOver {
		t.Fatalf("default policy = %q", p.Policy)
	}
	q := DefaultQuery()
	q.Criteria.Category = "Pricing"
	res := p.Run(all, q, p.Baseline(all))
	if len(res.Reviews) != 0 || len(res.Words) != 0 || res.Stats.Count != 0 {
		t.Fatalf("unknown category result = %+v", res)
	}
}

func TestPipelineRunSortsAndCounts(t *testing.T) {
	all := sampleReviews(t)
	p := NewPipeline(nil, DefaultWordOptions(), PolicyCarryOver)
	q := Query{Criteria: DefaultCriteria(), Sort: SortSpec{SortRating, Asc}}
	res := p.Run(all, q, nil)
	if !equalInts(rows(res.Reviews), []int{3, 5, 2, 1, 4}) {
		t.Fatalf("rows = %v", rows(res.Reviews))
	}
	if res.Stats.Count != len(res.Reviews) {
		t.Fatalf("stats count %d != %d", res.Stats.Count, len(res.Reviews))
	}
}

func TestParseWordPolicy(t *testing.T) {
	cases := map[string]WordPolicy{"": PolicyCarryOver, "Carry-Over": PolicyCarryOver, "recompute": PolicyRecompute}
	for in, want := range cases {
		got, err := ParseWordPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseWordPolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseWordPolicy("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
}
