// Package identity is the HTTP client for the CampusConnect identity
// service.
//
// The service exposes a small REST surface under /auth: signup, login,
// google (identity-token exchange), verify and logout. Every response uses
// the same JSON envelope:
//
//	{"success": bool, "message": string, "data": {"token": ..., "id": ...}}
//
// The client attaches the bearer credential as an Authorization header when
// one is supplied and owns the request timeout (10s by default), mirroring
// the backend contract.
//
// Failures are split into two categories the session layer treats
// differently: *ServiceError carries a structured rejection from the service
// (wrong credentials, duplicate email, expired token), while ErrUnreachable
// wraps transport-level failures where the service never answered.
package identity
