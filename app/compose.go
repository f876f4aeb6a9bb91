package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"viralfeed/domain"
	"viralfeed/internal/textutil"
)

const composerPrompt = `<system>
  <role>
    You are a highly influential professional-network content creator with a strong software-engineering background.
  </role>

  <task>
    Given a full news article (supplied inside <article> tags by the user), write a post that maximises
    insight, engagement and virality among experienced software engineers.
  </task>

  <objectives>
    <objective id="1">Deliver non-obvious, technically valuable insight.</objective>
    <objective id="2">Trigger comments, reactions and shares.</objective>
    <objective id="3">Stay concise; no fluff.</objective>
  </objectives>

  <guidelines>
    <tone>Professional yet approachable. Hook first, then analysis, then call-to-action.</tone>
    <seo>Weave in natural-language keywords that emerge from the article; avoid hash symbols inside the body.</seo>
    <formatting>Plain text only. Use real newlines for paragraphs. Never use markdown.</formatting>
  </guidelines>

  <output_format>
    <assistant_response_format>{"type":"json_object"}</assistant_response_format>
    <schema>
      <field name="title"   type="string" desc="5-15 word hook" />
      <field name="content" type="string" desc="Post body; plain text with real line breaks." />
      <field name="tags"    type="array"  desc="3-5 lower-case single-word keywords, no #." />
    </schema>
  </output_format>

  <remember>
    Return *only* the JSON object, nothing else.
  </remember>
</system>`

const composeAttempts = 5

// Composer turns extracted article text into a plain-text social post. When
// the service smuggles markdown into the body, the flagged content itself is
// resubmitted as the next input, bounded by the attempt cap.
type Composer struct {
	gen         domain.Generator
	temperature float32
	maxTokens   int32
	now         func() time.Time
}

func NewComposer(gen domain.Generator, temperature float32, maxTokens int32) *Composer {
	return &Composer{gen: gen, temperature: temperature, maxTokens: maxTokens, now: time.Now}
}

func (c *Composer) Generate(ctx context.Context, articleText string, item domain.FeedItem) (domain.Post, error) {
	user := fmt.Sprintf("<article>\n%s\n</article>", articleText)
	var lastErr error

	for attempt := 1; attempt <= composeAttempts; attempt++ {
		raw, err := c.gen.Generate(ctx, domain.GenRequest{
			System:          composerPrompt,
			User:            user,
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		})
		if err != nil {
			lastErr = err
			log.Printf("compose: attempt %d/%d failed: %v", attempt, composeAttempts, err)
			continue
		}

		var resp struct {
			Title   string   `json:"title"`
			Content string   `json:"content"`
			Tags    []string `json:"tags"`
		}
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			lastErr = fmt.Errorf("malformed response: %w", err)
			log.Printf("compose: attempt %d/%d returned malformed JSON: %v", attempt, composeAttempts, err)
			continue
		}
		if textutil.ContainsMarkdown(resp.Content) {
			lastErr = fmt.Errorf("response contains markdown")
			log.Printf("compose: markdown detected on attempt %d/%d, resubmitting", attempt, composeAttempts)
			user = resp.Content
			continue
		}

		return domain.Post{
			ID:         uuid.NewString(),
			Title:      resp.Title,
			Content:    resp.Content,
			Tags:       resp.Tags,
			SourceLink: item.Link,
			PostTime:   c.now().UTC(),
		}, nil
	}
	return domain.Post{}, &domain.GenerationError{Attempts: composeAttempts, Err: lastErr}
}
