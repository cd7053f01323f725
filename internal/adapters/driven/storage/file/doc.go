// Package file provides a YAML-file implementation of driven.TopicStore.
//
// The whole topics file is the collection: every List re-reads it, so edits
// made by hand become visible on the next corpus refresh. A Watcher reports
// changes to the file so the corpus cache can be invalidated.
//
// Format:
//
//	topics:
//	  - id: t1
//	    title: Intro to Routing
//	    materialSlug: networking
//	    content:
//	      - type: paragraph
//	        data:
//	          primaryText: Static routes are manual.
//	          secondaryText: ""
package file
