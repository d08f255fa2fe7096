package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Brownie44l1/weather-api/internal/weather"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test_predictions.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	samples := []struct {
		sample weather.Sample
		label  weather.Label
		index  int
		at     time.Time
	}{
		{weather.Sample{TemperatureCelsius: 25, HumidityPercent: 60}, weather.Sunny, 3, base},
		{weather.Sample{TemperatureCelsius: -2.5, HumidityPercent: 80}, weather.Cold, 1, base.Add(500 * time.Millisecond)},
		{weather.Sample{TemperatureCelsius: 18, HumidityPercent: 95}, weather.Rainy, 2, base.Add(time.Second)},
	}
	for _, sm := range samples {
		r := NewRecord(sm.sample, weather.Prediction{Label: sm.label, Index: sm.index}, sm.at)
		if err := s.SavePrediction(ctx, r); err != nil {
			t.Fatalf("SavePrediction failed: %v", err)
		}
	}

	list, err := s.ListPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("ListPredictions failed: %v", err)
	}
	if len(list) != len(samples) {
		t.Fatalf("ListPredictions returned %d records, want %d", len(list), len(samples))
	}

	want := []weather.Label{weather.Rainy, weather.Cold, weather.Sunny}
	for i, r := range list {
		if r.Label != want[i] {
			t.Errorf("list[%d].Label = %q, want %q", i, r.Label, want[i])
		}
		if r.ID == "" {
			t.Errorf("list[%d].ID is empty", i)
		}
	}
	if got := list[1]; got.TemperatureCelsius != -2.5 || got.HumidityPercent != 80 || got.Index != 1 {
		t.Errorf("list[1] = %+v", got)
	}
	if !list[1].CreatedAt.Equal(samples[1].at) {
		t.Errorf("list[1].CreatedAt = %v, want %v", list[1].CreatedAt, samples[1].at)
	}
}

func TestSQLiteListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 5; i++ {
		r := NewRecord(weather.Sample{}, weather.Prediction{Label: weather.Cloudy}, now.Add(time.Duration(i)*time.Second))
		if err := s.SavePrediction(ctx, r); err != nil {
			t.Fatalf("SavePrediction failed: %v", err)
		}
	}

	list, err := s.ListPredictions(ctx, 2)
	if err != nil {
		t.Fatalf("ListPredictions failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListPredictions(2) returned %d records", len(list))
	}

	all, err := s.ListPredictions(ctx, 0)
	if err != nil {
		t.Fatalf("ListPredictions failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("ListPredictions(0) returned %d records, want 5", len(all))
	}
}

func TestSQLiteListBadTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions(id, temperature, humidity, label, label_index, created_at) VALUES(?,?,?,?,?,?)`,
		"broken", 20, 50, "Sunny", 3, "yesterday")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := s.ListPredictions(ctx, 10); err == nil {
		t.Fatal("ListPredictions with an unparseable created_at succeeded, want error")
	}
}
