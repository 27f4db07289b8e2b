// Package cookieapi exposes the cookie jar to local callers over HTTP on a
// Unix domain socket.
//
// The caller's pid, uid and gid are read with SO_PEERCRED when a connection
// is accepted and attached to every request on that connection. A caller can
// only issue or drop cookies for its own pid. Reading a credential by cookie
// requires presenting the cookie; lookups by any other criterion return the
// identity without its cookie. The socket mode decides which users can
// connect, and the parent directory only grants search to those classes.
//
// Routes:
//
//	POST   /v1/cookies                       issue for the caller
//	DELETE /v1/cookies                       drop the caller's cookies
//	GET    /v1/cookies/{cookie}              full credential
//	GET    /v1/cookies/{cookie}/pid          single field (also label, groups, path)
//	POST   /v1/cookies/{cookie}/check-group  group overlap against {"gid": N}
//	GET    /v1/lookup?by=<criterion>&value=  first matching identity, no cookie
//
// Only Linux is supported; Start fails elsewhere.
package cookieapi
