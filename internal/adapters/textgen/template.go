package textgen

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

var toneTemplates = map[entities.Tone][]string{
	entities.ToneEncouraging: {
		"Great choice! %s is a step towards a cleaner home. You've got this!",
		"Every round of %s buys you peace of mind. Go for it!",
		"You run this house. %s is waiting for your magic.",
		"%s now means a calmer evening later. Nice work!",
	},
	entities.TonePlayful: {
		"Time for %s! Let's make it an adventure!",
		"Hey superhero, %s needs your powers!",
		"Music on, %s in rhythm. Let's dance through it!",
		"Boom! %s time! Ready for the challenge?",
	},
	entities.ToneNeutral: {
		"Time for %s. One step at a time.",
		"%s is next on the list. Stay consistent.",
		"Regular %s keeps things in order.",
		"%s, as planned.",
	},
}

// TemplateGenerator writes messages from a fixed set of phrases. The
// phrase is picked from a hash of the task name, so output is stable.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(_ context.Context, prompt ports.MessagePrompt) (string, error) {
	phrases, ok := toneTemplates[prompt.Tone]
	if !ok {
		phrases = toneTemplates[entities.ToneNeutral]
	}

	h := fnv.New32a()
	h.Write([]byte(prompt.TaskName))
	start := int(h.Sum32() % uint32(len(phrases)))

	// Prefer a phrase that fits without truncation.
	for i := range phrases {
		msg := fmt.Sprintf(phrases[(start+i)%len(phrases)], prompt.TaskName)
		if prompt.MaxLength <= 0 || len([]rune(msg)) <= prompt.MaxLength {
			return msg, nil
		}
	}
	return fmt.Sprintf(phrases[start], prompt.TaskName), nil
}

// Fallback tries the primary generator and falls back to the secondary
// one unless the caller's context is already done.
type Fallback struct {
	primary   ports.TextGenerator
	secondary ports.TextGenerator
	logger    *logger.Logger
}

func NewFallback(primary, secondary ports.TextGenerator, logger *logger.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, logger: logger.WithComponent("textgen")}
}

func (f *Fallback) Generate(ctx context.Context, prompt ports.MessagePrompt) (string, error) {
	text, err := f.primary.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	f.logger.Warnw("Primary text generator failed, using fallback", "error", err)
	return f.secondary.Generate(ctx, prompt)
}
