package telegram

import (
	"testing"

	"github.com/moviedeck/moviedeck/internal/core"
	"github.com/moviedeck/moviedeck/internal/presenter"
)

func TestParseListCommand(t *testing.T) {
	tests := []struct {
		input string
		want  core.ListType
		ok    bool
	}{
		{"/popular", core.ListPopular, true},
		{"/top", core.ListTopRated, true},
		{"/toprated", core.ListTopRated, true},
		{"/nowplaying", core.ListNowPlaying, true},
		{"/upcoming", core.ListUpcoming, true},
		{"popular", core.ListPopular, true},
		{"top_rated", core.ListTopRated, true},
		{"/unknown", "", false},
		{"hello there", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseListCommand(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseListCommand(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseSelectionCallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
		ok   bool
	}{
		{"valid", "sel:550", 550, true},
		{"wrong_prefix", "pick:550", 0, false},
		{"not_a_number", "sel:abc", 0, false},
		{"zero", "sel:0", 0, false},
		{"negative", "sel:-5", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSelectionCallback(tt.data)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseSelectionCallback(%q) = %d, %v; want %d, %v", tt.data, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBuildSelectionKeyboard(t *testing.T) {
	rows := []presenter.MovieRow{
		{ID: 27205, Title: "Inception"},
		{ID: 550, Title: "A very long movie title that exceeds thirty characters"},
	}

	kb := buildSelectionKeyboard(rows)
	if kb == nil {
		t.Fatal("expected keyboard")
	}
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(kb.InlineKeyboard))
	}

	first := kb.InlineKeyboard[0][0]
	if first.Text != "1. Inception" {
		t.Errorf("unexpected button label: %q", first.Text)
	}
	if first.CallbackData == nil || *first.CallbackData != "sel:27205" {
		t.Errorf("expected callback data 'sel:27205', got %v", first.CallbackData)
	}

	second := kb.InlineKeyboard[1][0]
	if len(second.Text) > 40 {
		t.Errorf("expected truncated label, got length %d: %q", len(second.Text), second.Text)
	}
	if second.CallbackData == nil || *second.CallbackData != "sel:550" {
		t.Errorf("expected callback data 'sel:550', got %v", second.CallbackData)
	}
}

func TestPlainMovieDetails(t *testing.T) {
	rows := []presenter.DetailRow{
		{Kind: presenter.RowKindImage, ImageURL: "https://images.test/original/p.jpg"},
		{Kind: presenter.RowKindDescription, Text: "Plot."},
		{Kind: presenter.RowKindTitleValue, Title: "Runtime", Value: "2 hours"},
	}

	got := plainMovieDetails("Title", rows)
	want := "Title\n\nPlot.\nRuntime: 2 hours"
	if got != want {
		t.Errorf("plainMovieDetails = %q, want %q", got, want)
	}
}
