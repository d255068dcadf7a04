// Package auth provides the authentication collaborators of the REST layer.
//
// Two mutually exclusive schemes are supported:
//
//   - Token: an identity provider has logged the user in and a bearer token
//     is available from a TokenStore. TokenIdentity reports whether the
//     provider is initialized and exposes the current token.
//   - Challenge/response: the server answers 401 with a WWW-Authenticate
//     challenge. DigestClient performs the handshake (Digest, or Basic as a
//     fallback) using credentials from a CredentialSource.
//
// Service implements Capability, the view the dispatcher uses to decide
// whether a session needs the challenge/response client at all.
//
// # Usage
//
//	creds := auth.StaticCredentials{Username: "admin", Password: "secret"}
//	client := auth.NewDigestClient(creds, auth.WithLogger(logger))
//	capability := auth.NewService(true, client)
//
// Token files written by an external login flow can be followed with
// FileTokenStore, which reloads the token whenever the file changes.
package auth
