package generator

import "context"

// Generator produces a completion for a fully assembled prompt. Prompt
// construction is the caller's job; implementations only talk to a provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
