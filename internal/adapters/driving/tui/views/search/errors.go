package search

import "errors"

// ErrNoSearchService is reported when the dialog has nothing to query.
var ErrNoSearchService = errors.New("search dialog has no search service")
