package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitSymbols(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "AAPL,MSFT", []string{"AAPL", "MSFT"}},
		{"lowercase and whitespace", " aapl , msft ", []string{"AAPL", "MSFT"}},
		{"empty entries dropped", "AAPL,,MSFT,", []string{"AAPL", "MSFT"}},
		{"blank input", "  ,  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSymbols(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("symbol %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRun_RejectsInvalidDates(t *testing.T) {
	tests := []struct {
		name    string
		symbols string
		start   string
		end     string
		wantErr string
	}{
		{"no symbols", " , ", "2024-01-01", "2024-01-31", "at least one symbol"},
		{"bad start", "AAPL", "January 1", "2024-01-31", "invalid --start"},
		{"bad end", "AAPL", "2024-01-01", "31/01/2024", "invalid --end"},
		{"inverted range", "AAPL", "2024-01-31", "2024-01-01", "must not precede"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbolList = tt.symbols
			startDate = tt.start
			endDate = tt.end

			err := run(&cobra.Command{}, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
