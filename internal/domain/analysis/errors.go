package analysis

import "errors"

// ErrInvalidLocator indicates the supplied repository reference cannot be
// parsed into owner/name. Fatal to the analysis request, no retry.
var ErrInvalidLocator = errors.New("invalid repository locator")

// ErrRepositoryNotFound indicates the target repository does not exist.
var ErrRepositoryNotFound = errors.New("repository not found")

// ErrAccessDenied indicates the provider rejected the request (bad or missing
// credentials, rate limited without token, private repository).
var ErrAccessDenied = errors.New("repository access denied")
