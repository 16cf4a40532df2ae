/*
sessionstore provides tapatalk.SessionStore backends. Each backend manages
many end-user sessions and hands out a per-session view via Session(id):

* Memory: process-local with per-entry TTL, for single-instance servers.

* File: one JSON file per session under a directory, serialized with flock
advisory locks so multiple processes can share it.

* Redis: for sharing sessions across server instances, with a TTL so
abandoned login attempts expire.
*/
package sessionstore
