package timeutil

import (
	"testing"
	"time"
)

func TestEpochMillisRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123*int(time.Millisecond), time.UTC)

	raw := FormatEpochMillis(ts)
	if raw != "1714979289123" {
		t.Fatalf("unexpected epoch millis %s", raw)
	}

	parsed, err := ParseEpochMillis(raw)
	if err != nil {
		t.Fatalf("expected parse success, got %v", err)
	}
	if !parsed.Equal(ts) {
		t.Fatalf("expected %s, got %s", ts, parsed)
	}
}

func TestParseEpochMillisRejectsGarbage(t *testing.T) {
	if _, err := ParseEpochMillis("soon"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if _, err := ParseEpochMillis(""); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestParseEpochMillisTrimsWhitespace(t *testing.T) {
	got, err := ParseEpochMillis(" 1000\n")
	if err != nil {
		t.Fatalf("expected parse success, got %v", err)
	}
	if EpochMillis(got) != 1000 {
		t.Fatalf("expected 1000ms, got %d", EpochMillis(got))
	}
}

func TestSecondsToDuration(t *testing.T) {
	if got := SecondsToDuration(5184000); got != 1440*time.Hour {
		t.Fatalf("expected 60 days, got %s", got)
	}
}
