package kb

import "fmt"

// AlreadyInitializedError indicates init found an existing knowledge base and was not forced.
type AlreadyInitializedError struct {
	Path string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("knowledge base already exists at %s; use --force to overwrite", e.Path)
}

// NotInitializedError indicates an operation needs a knowledge base that is not there yet.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("no knowledge base found at %s; run 'aic init' first", e.Path)
}
