// Package domain defines the core business entities for the listing studio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Property: A listing page and its ordered sections
//   - Section: A closed set of page block variants (hero, gallery, ...)
//   - StyledText / DraggableText: Editable text with typography and placement
//   - AssetRef: An opaque image or video reference
//   - ElementRef: The identity of one editable element on the page
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
