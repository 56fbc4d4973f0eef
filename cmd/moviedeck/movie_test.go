package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moviedeck/moviedeck/internal/config"
	"github.com/moviedeck/moviedeck/internal/core"
)

func testAppConfig(defaultList string) *config.Config {
	return &config.Config{App: config.AppConfig{DefaultList: defaultList}}
}

func TestMovieModel_Init(t *testing.T) {
	m := newMovieModel(context.Background(), 550, &fakeDetails{}, &fakeConfig{})
	if m.Init() == nil {
		t.Error("Init should return a command (spinner tick + fetch)")
	}
}

func TestMovieModel_FetchAndRender(t *testing.T) {
	details := &fakeDetails{details: &core.MovieDetails{
		ID:       550,
		Title:    "Fight Club",
		Overview: "An insomniac office worker.",
		Budget:   63_000_000,
		Runtime:  139,
	}}
	m := newMovieModel(context.Background(), 550, details, &fakeConfig{})

	msg := m.fetchDetails()()
	result, ok := msg.(movieResultMsg)
	if !ok {
		t.Fatalf("expected movieResultMsg, got %T", msg)
	}
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	if result.title != "Fight Club" {
		t.Errorf("title = %q, want Fight Club", result.title)
	}
	if len(result.rows) != 3 {
		t.Fatalf("expected 3 rows (overview, budget, runtime), got %d", len(result.rows))
	}

	updated, cmd := m.Update(result)
	mm := updated.(movieModel)
	if !mm.done {
		t.Error("should be done after the result message")
	}
	if cmd == nil {
		t.Error("result message should quit the program")
	}

	view := mm.View()
	if !strings.Contains(view, "Fight Club") {
		t.Errorf("view should contain the title, got %q", view)
	}
	if !strings.Contains(view, "US$63,000,000.00") {
		t.Errorf("view should contain the formatted budget, got %q", view)
	}
	if !strings.Contains(view, "2 hours 19 minutes") {
		t.Errorf("view should contain the formatted runtime, got %q", view)
	}
}

func TestMovieModel_FetchError(t *testing.T) {
	fetchErr := errors.New("not found")
	m := newMovieModel(context.Background(), 1, &fakeDetails{err: fetchErr}, &fakeConfig{})

	msg := m.fetchDetails()()
	result := msg.(movieResultMsg)
	if !errors.Is(result.err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", result.err)
	}

	updated, _ := m.Update(result)
	mm := updated.(movieModel)

	view := mm.View()
	if !strings.Contains(view, "not found") {
		t.Errorf("view should contain the error, got %q", view)
	}
}

func TestMovieModel_CtrlC(t *testing.T) {
	m := newMovieModel(context.Background(), 550, &fakeDetails{}, &fakeConfig{})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c should return a quit command")
	}
}

func TestResolveList(t *testing.T) {
	cfg := testAppConfig("popular")

	if list, err := resolveList("", cfg); err != nil || list != core.ListPopular {
		t.Errorf("resolveList(\"\") = %q, %v; want popular", list, err)
	}
	if list, err := resolveList("top_rated", cfg); err != nil || list != core.ListTopRated {
		t.Errorf("resolveList(top_rated) = %q, %v", list, err)
	}
	if _, err := resolveList("trending", cfg); err == nil {
		t.Error("resolveList should reject unknown lists")
	}
}
