// Package normalisers turns authored documents into topics for import.
//
// Each subpackage handles one format and yields domain.Topic values ready
// for TopicService.Import.
package normalisers
