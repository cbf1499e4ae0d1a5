// Package sanitizer normalizes user-provided input before it is handed to
// the identity service.
//
// The helpers are intentionally conservative: they fix common input mistakes
// (stray whitespace, mixed case, doubled dots in email local parts) without
// rejecting anything. Validation is the identity service's job.
package sanitizer
