/*
Package domain contains the core domain models of the substrate designer.

It defines the value types shared by the editing runtime and its adapters: grid
coordinates and the space that bounds them, node roles, undirected connections, the
interaction mode and the read-only snapshot handed to presentation layers. This
package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Coord: A point on the integer grid, compared by value.
  - Space: The fixed, zero-centered square of valid coordinates (odd side length).
  - Role: The closed set of explicit node roles (Input, Output).
  - Connection: An undirected edge between two distinct coordinates.
  - Mode: The interaction state (idle, placement armed, endpoint selected).
  - Snapshot: Everything a view needs to re-render, with hidden nodes derived.
*/
package domain
