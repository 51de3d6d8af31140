/*
Package session implements session management for concurrent hosts.

A substrate.Designer is single-writer. The Manager serializes every operation on a
session behind a per-session mutex, so the HTTP and MCP servers can drive many
sessions from many goroutines while each designer only ever sees one caller at a time.
*/
package session
