package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"viralfeed/domain"
)

const headlinePickerPrompt = `<system>
  <role>Expert viral-content strategist for professional social networks.</role>

  <task>Select ONE headline from the candidate list that is most likely to go viral with professionals.</task>

  <selection_criteria>
    <relevance>Appeals to business, engineering or career-growth interests.</relevance>
    <emotional_hook>Evokes curiosity, surprise or urgency.</emotional_hook>
    <shareability>Readers feel compelled to pass it on.</shareability>
    <novelty>Topic is fresh, not over-saturated, and not a repeat of anything in the posted list.</novelty>
  </selection_criteria>

  <input_format>
    The user supplies:
    <new_list>Candidate headlines, numbered from 0, one per line.</new_list>
    <posted_list>Headlines already used, numbered from 0.</posted_list>
  </input_format>

  <output_format>
    <assistant_response_format>{"type":"json_object"}</assistant_response_format>
    <schema>
      <field name="chosen_headline_index" type="string"
             desc="0-based index of the headline you picked from new_list, exactly as numbered."/>
    </schema>
    <example>{"chosen_headline_index":"2"}</example>
  </output_format>

  <rules>Return exactly one JSON object and NOTHING else.</rules>
</system>`

// Selector asks the generation service to pick the candidate most likely to
// travel, steering away from recently posted topics.
type Selector struct {
	gen domain.Generator
}

func NewSelector(gen domain.Generator) *Selector {
	return &Selector{gen: gen}
}

// Choose returns the index of the picked candidate. The prompt numbering and
// the returned index are both 0-based; anything outside [0, len(candidates))
// is a SelectionError, never clamped. An empty candidate list short-circuits
// with ErrNoCandidates before any generation call.
func (s *Selector) Choose(ctx context.Context, candidates []domain.FeedItem, posted []domain.Post) (int, error) {
	if len(candidates) == 0 {
		return 0, domain.ErrNoCandidates
	}

	var newList, postedList strings.Builder
	for i, item := range candidates {
		fmt.Fprintf(&newList, "%d. %s\n", i, item.Title)
	}
	for i, post := range posted {
		fmt.Fprintf(&postedList, "%d. %s\n", i, post.Title)
	}
	user := fmt.Sprintf("<new_list>\n%s</new_list>\n<posted_list>\n%s</posted_list>",
		newList.String(), postedList.String())

	raw, err := s.gen.Generate(ctx, domain.GenRequest{
		System:          headlinePickerPrompt,
		User:            user,
		Temperature:     0.7,
		MaxOutputTokens: 50,
	})
	if err != nil {
		return 0, err
	}

	// the service sometimes answers with a bare number instead of the
	// quoted string the schema asks for; accept both
	var resp struct {
		ChosenHeadlineIndex json.RawMessage `json:"chosen_headline_index"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return 0, &domain.SelectionError{Raw: raw, Index: -1, Count: len(candidates)}
	}
	choice := strings.Trim(strings.TrimSpace(string(resp.ChosenHeadlineIndex)), `"`)
	index, err := strconv.Atoi(choice)
	if err != nil {
		return 0, &domain.SelectionError{Raw: choice, Index: -1, Count: len(candidates)}
	}
	if index < 0 || index >= len(candidates) {
		return 0, &domain.SelectionError{Raw: choice, Index: index, Count: len(candidates)}
	}
	return index, nil
}
