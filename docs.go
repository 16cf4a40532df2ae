// login provides "login with Tapatalk" support for Go applications: building
// the authorization redirect URL, carrying a one-time CSRF state across the
// redirect round-trip, and exchanging the authorization code for an access
// token.
//
// See README.md
package login
