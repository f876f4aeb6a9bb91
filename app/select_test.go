package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"viralfeed/domain"
)

func candidates(n int) []domain.FeedItem {
	out := make([]domain.FeedItem, n)
	for i := range out {
		out[i] = domain.FeedItem{Title: fmt.Sprintf("headline %d", i), Link: fmt.Sprintf("https://example.com/%d", i)}
	}
	return out
}

func TestChooseReturnsValidIndex(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"chosen_headline_index":"2"}`}}
	index, err := NewSelector(gen).Choose(context.Background(), candidates(5), nil)
	if err != nil {
		t.Fatalf("Choose() error: %v", err)
	}
	if index != 2 {
		t.Errorf("Choose() = %d, want 2", index)
	}
}

func TestChooseAcceptsBareNumberIndex(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"chosen_headline_index":2}`}}
	index, err := NewSelector(gen).Choose(context.Background(), candidates(5), nil)
	if err != nil {
		t.Fatalf("Choose() error: %v", err)
	}
	if index != 2 {
		t.Errorf("Choose() = %d, want 2", index)
	}
}

func TestChoosePromptIsZeroIndexed(t *testing.T) {
	// the prompt numbering and the parsed index share the same 0-based
	// convention: candidate 0 appears as "0." and index 0 selects it
	gen := &fakeGenerator{responses: []string{`{"chosen_headline_index":"0"}`}}
	items := candidates(3)
	index, err := NewSelector(gen).Choose(context.Background(), items, []domain.Post{{Title: "older post"}})
	if err != nil {
		t.Fatalf("Choose() error: %v", err)
	}
	if index != 0 {
		t.Fatalf("Choose() = %d, want 0", index)
	}
	user := gen.requests[0].User
	if !strings.Contains(user, "0. headline 0\n") {
		t.Errorf("prompt candidate list is not 0-indexed:\n%s", user)
	}
	if !strings.Contains(user, "0. older post\n") {
		t.Errorf("prompt posted list is not 0-indexed:\n%s", user)
	}
}

func TestChooseIndexBounds(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"negative", `{"chosen_headline_index":"-1"}`},
		{"equal to length", `{"chosen_headline_index":"3"}`},
		{"way out", `{"chosen_headline_index":"42"}`},
		{"non-numeric", `{"chosen_headline_index":"two"}`},
		{"not json", `pick number 2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{responses: []string{tt.resp}}
			_, err := NewSelector(gen).Choose(context.Background(), candidates(3), nil)
			var selErr *domain.SelectionError
			if !errors.As(err, &selErr) {
				t.Fatalf("Choose() error = %v, want SelectionError", err)
			}
			if selErr.Count != 3 {
				t.Errorf("SelectionError.Count = %d, want 3", selErr.Count)
			}
		})
	}
}

func TestChooseEmptyCandidates(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"chosen_headline_index":"0"}`}}
	_, err := NewSelector(gen).Choose(context.Background(), nil, []domain.Post{{Title: "x"}})
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Fatalf("Choose() error = %v, want ErrNoCandidates", err)
	}
	if len(gen.requests) != 0 {
		t.Errorf("Choose() made %d generation calls with no candidates, want 0", len(gen.requests))
	}
}
