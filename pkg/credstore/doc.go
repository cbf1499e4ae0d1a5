// Package credstore provides persistent key-value storage for the session
// credential and cached user snapshot.
//
// Three implementations cover the deployment spectrum:
//
//   - MemoryStore: process-lifetime storage for tests and ephemeral sessions.
//   - FileStore: a JSON file on the device, the desktop analogue of a mobile
//     client's async storage.
//   - RedisStore: shared storage for kiosk or multi-process deployments.
//
// SealedStore decorates any of the three with AES-256-GCM encryption at
// rest, keyed from a device key held in the platform keystore.
//
// All implementations are safe for concurrent use. A missing key is reported
// as ErrNotFound, never as an empty value, so callers can distinguish "no
// stored credential" from "stored empty string".
package credstore
