// Package server runs the local HTTP endpoint that completes the Spotify authorization code flow.
//
// # Router
//
// [Router] registers handlers behind a [Middleware] stack. [BasicRouter] wraps [http.ServeMux] and rejects
// requests whose method does not match the registered one. Middleware runs in the order it was added.
//
// # Callback
//
// [OAuthHandler] serves /callback. It checks the state parameter against the value generated for the login,
// exchanges the code for a token and delivers exactly one [OAuthResult]. Later hits are rejected.
//
// [Flow] ties the pieces together for the auth command: it listens on the configured address, hands the
// authorization URL to a browser opener, waits for the result (or a timeout) and shuts the server down.
package server
