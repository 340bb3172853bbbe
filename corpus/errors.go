package corpus

import "errors"

var (
	// ErrRepositoryRequired indicates the store was constructed without a repository.
	ErrRepositoryRequired = errors.New("candidate repository is required")

	// ErrRetrieverRequired indicates the store was constructed without a retriever.
	ErrRetrieverRequired = errors.New("retriever is required")
)
