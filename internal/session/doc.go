// Package session owns the model session and streaming-response pipeline.
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, model listing.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (State, Session).
//   - errors.go: error types and helpers (IsModelNotFound, IsTooBusy, ...).
//   - load.go: Load/Unload lifecycle, single residency, cancel-then-switch.
//   - prompt.go: chat-template rendering and isolated-prompt watermarking.
//   - generate.go: prompt submission and the token loop worker.
//   - stream.go: the fragment stream handed to consumers.
//   - status.go: Snapshot/Status reporting helpers.
//   - events.go: lifecycle event publishing.
//
// The Manager is the single source of truth for which model, if any, is
// resident. At most one model's weights are in memory per process; Load on a
// different model unloads the previous one first, cancelling and joining any
// in-flight generation before handles are released.
//
// External packages should use public methods only (NewWithConfig,
// SetModelDirectory, ListModels, Load, Unload, Chat, Status). Internal types
// are subject to change.
package session
