/*
Package ports defines the driven ports (interfaces) of cssmachine.

These interfaces decouple the compiler from the outer surfaces, allowing the same
core to be driven from the CLI, the HTTP service, or the MCP server, and to read
machines and persist documents through interchangeable backends.

# Key Interfaces

  - Compiler: Turns a MachineConfig into a standalone HTML document.
  - MachineLibrary: Read-only source of named machine definitions (e.g., Loam or Memory).
  - DocumentStore: Persists compiled documents so they can be shared by ID (e.g., Redis or Memory).
*/
package ports
