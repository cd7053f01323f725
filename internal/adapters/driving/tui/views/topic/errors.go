package topic

import "errors"

// ErrNoTopicService indicates that no topic service was provided.
var ErrNoTopicService = errors.New("topic service is required")
