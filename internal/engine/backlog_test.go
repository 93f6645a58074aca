package engine

import (
	"testing"
	"time"
)

func TestBucketsForPlacesTaskUnderItsWeekday(t *testing.T) {
	s := newTestStore()
	tuesday := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	task, err := s.Create(CreateInput{Name: "Essay", Date: tuesday})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	from := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC) // Sunday
	to := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)   // Saturday
	buckets := s.BucketsFor(from, to)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "SUN" || buckets[6].Label != "SAT" {
		t.Fatalf("unexpected labels: %s..%s", buckets[0].Label, buckets[6].Label)
	}

	for i, bucket := range buckets {
		if bucket.Label == "TUE" {
			if len(bucket.Tasks) != 1 || bucket.Tasks[0].ID != task.ID {
				t.Fatalf("TUE bucket missing the task: %+v", bucket.Tasks)
			}
			continue
		}
		if len(bucket.Tasks) != 0 {
			t.Fatalf("bucket %d (%s) unexpectedly contains tasks", i, bucket.Label)
		}
	}
}

func TestBucketsForPreservesStoreOrder(t *testing.T) {
	s := newTestStore()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"zebra", "apple", "mango"} {
		if _, err := s.Create(CreateInput{Name: name, Date: day}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	buckets := s.BucketsFor(day, day)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	got := buckets[0].Tasks
	if got[0].Name != "zebra" || got[1].Name != "apple" || got[2].Name != "mango" {
		t.Fatalf("bucket reordered tasks: %+v", got)
	}
}

func TestBucketsForEmptyRange(t *testing.T) {
	s := newTestStore()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := s.BucketsFor(day, day.AddDate(0, 0, -1)); got != nil {
		t.Fatalf("expected nil buckets for inverted range, got %v", got)
	}
}

func TestWeekdayLabelOutOfRangePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for out-of-range weekday")
		}
		if _, ok := r.(PreconditionViolation); !ok {
			t.Fatalf("expected PreconditionViolation, got %T: %v", r, r)
		}
	}()
	WeekdayLabel(7)
}

func TestWeekdayLabels(t *testing.T) {
	want := []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}
	for i, label := range want {
		if got := WeekdayLabel(i); got != label {
			t.Fatalf("weekday %d: expected %s, got %s", i, label, got)
		}
	}
}
