/*
tapatalk is a package for adding "login with Tapatalk" to an application using
the provider's OAuth2-style authorization code flow.

Primary types provided by the package

* App: an immutable value object identifying a registered application (client
id plus client secret, with the secret redacted when printed or marshaled).

* Flow: coordinates one login attempt. It builds the authorization redirect
URL (persisting a one-time CSRF state in the user's session), and on the
provider's redirect back it validates the echoed state and exchanges the
authorization code for an access token.

* SessionStore: a keyed string store scoped to a single end-user session,
used to carry the pending state across the redirect round-trip. The
sessionstore package provides in-memory, file-backed and Redis-backed
implementations; any backend satisfying the interface can be substituted.

The state a Flow persists is one-time use: it is generated from a
cryptographically secure source, reused across duplicate AuthURL calls within
one unconsumed attempt, validated with a constant-time comparison on the
callback, and cleared before the code exchange whatever the exchange outcome.
*/
package tapatalk
