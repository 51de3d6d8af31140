/*
Package ports defines the driven ports (interfaces) for the Substrate designer.

These interfaces decouple session orchestration from concrete storage, so hosts
(the HTTP server, the MCP server, the CLI) can share one session manager over any
backend.

# Key Interfaces

  - SessionStore: holds live Designer sessions keyed by ID.
*/
package ports
