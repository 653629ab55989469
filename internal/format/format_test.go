package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{1250, "GBP", "£12.50"},
		{123456789, "gbp", "£1,234,567.89"},
		{-599, "USD", "-$5.99"},
		{12345, "JPY", "¥12,345"},
		{1000, "CHF", "CHF 1,000"},
	}
	for _, tt := range tests {
		if got := Currency(tt.minor, tt.currency); got != tt.want {
			t.Errorf("Currency(%d, %q) = %q, want %q", tt.minor, tt.currency, got, tt.want)
		}
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{510, "£5"},
		{1020, "£10"},
		{550, "£6"},
		{1200, "£12"},
		{120000000, "£1,200,000"},
	}
	for _, tt := range tests {
		if got := WholeCurrency(tt.minor, "GBP"); got != tt.want {
			t.Errorf("WholeCurrency(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)); got != "Mar 7, 2024" {
		t.Fatalf("Date = %q", got)
	}
	if got := Date(time.Time{}); got != "" {
		t.Fatalf("zero Date = %q", got)
	}
}
