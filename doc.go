// Package frigocheck is the Go client SDK for the FrigoCheck
// shopping-list and stock backend.
//
// Session lifecycle:
//   - A SessionManager owns the process-wide session state. It is an
//     explicitly constructed object (no package globals): build one at
//     startup with NewSessionManager and hand it to whoever needs the
//     resolved identity.
//   - Session resolution runs at most once per manager lifetime. The
//     SessionResolver guards the pass with a tri-state latch so that
//     concurrent callers share a single in-flight profile fetch.
//   - Login, Register and Logout override the resolved state directly;
//     passive resolution failures never clear stored credentials.
//
// Credentials:
//   - CredentialStore is the single source of truth for the persisted
//     bearer token and user id. The credentials subpackage ships a
//     sqlite-backed store (via bun) and an in-memory store for tests.
//
// Token claims:
//   - DecodeToken extracts id/email claims from the token payload
//     without verifying the signature. The result is an untrusted hint
//     used only to bootstrap a profile lookup key; the server-side
//     profile fetch is the actual trust boundary. Never use decoded
//     claims for authorization decisions.
package frigocheck
