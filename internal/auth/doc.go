// Package auth holds the authentication and authorization core.
//
// Hasher produces and checks bcrypt password digests. TokenService issues
// HS256 tokens carrying {sub, role, exp} and validates them. IdentityFromHeader
// turns an Authorization header into an Identity, and Policy/RequireRole
// decide whether that Identity may run an operation.
//
// Authentication failures surface as apperror Unauthorized, authorization
// failures as apperror Forbidden. Library errors are never returned.
package auth
