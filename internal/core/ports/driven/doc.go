// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - DocumentLoader: Reads raw documents from a source root
//   - EmbeddingService: Maps text batches to fixed-dimension vectors
//   - VectorStore: Exact inner-product similarity index with persistence
//   - AnswerComposer: Turns retrieved chunks into a cited answer
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - QueryLogStore: Audit log of served queries. Without it, asks are
//     simply not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
