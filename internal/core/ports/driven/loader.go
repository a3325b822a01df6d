package driven

import "context"

// DocumentLoader reads raw documents from a source root.
type DocumentLoader interface {
	// Load returns a mapping from source identifier (e.g. file path) to
	// raw text. Fails with domain.ErrSourceNotFound if the root does
	// not exist.
	Load(ctx context.Context, root string) (map[string]string, error)
}
