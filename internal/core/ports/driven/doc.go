// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PropertyStore: Property document persistence (SQLite, Firestore, memory)
//   - BlobStore: Locally authored image and video bytes
//   - KeyValueStore: Site-level settings outside any property
//   - SubmissionStore: Append-only contact form submissions
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LocationAssistant: Geocoding and nearby places. Without it, location enrichment is disabled.
//   - LLMService: Language model used by the default LocationAssistant.
//   - PromptStore: Custom prompt templates for the LLM.
//   - AssetUploader: Cloud upload of assets. Without it, assets stay in the local blob store.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
