package ports

import "context"

// Analyzer is the external text/AI collaborator. One call contract: a prompt
// in, a generated analysis out.
type Analyzer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
