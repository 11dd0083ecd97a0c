// Package document implements the pure transforms of a Property: the
// section factory, patch merging, section and item add/update/remove/reorder,
// and structural validation.
//
// Every function here is side-effect free. A transform returns a new Property
// that shares no mutable state with its input. When the target of a transform
// no longer exists (a section or item deleted by an earlier edit) the input is
// returned unchanged and no error is reported; the editing surface may race
// against deletions and must not fail because of it.
//
// A transform that changes the document increments Property.Version. Callers
// compare versions to learn whether anything happened.
//
// # Import Rules
//
//   - Can Import: domain package, github.com/google/uuid
//   - Cannot Import: ports, services, adapters
package document
