// Package core contains the business logic for the annotation engine.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Highlight, BookmarkContent, etc.)
// - annotate: Document tree, offset projection, range resolution and overlay composition
// - highlights: Optimistic highlight reconciliation and the annotation service
// - content: Bookmark content fetching, extraction and versioning
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, storage)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "github.com/samling-jackyjyo/hoarder-sub003/core/annotate"
//	    "github.com/samling-jackyjyo/hoarder-sub003/core/highlights"
//	)
//
//	// Project a document into offset space
//	root, err := annotate.Parse(html)
//	offsets := annotate.Project(root, annotate.DefaultPolicy())
//
//	// Compose stored highlights over the tree
//	overlay := annotate.Compose(root, offsets, stored)
//	rendered := overlay.Root.HTML()
//
package core
