/*
Package domain contains the machine model compiled by cssmachine.

It defines the declarative Turing machine the compiler consumes: an ordered list of
named states, each with one transition per binary read symbol, plus the tape length.
The package is kept pure and free of I/O so that the compiler, the adapters, and the
editor tooling all share one definition.

# Key Entities

  - MachineConfig: The ordered states and the tape length. The state order is the
    enumeration order used to assign integer indices; the implicit HALT state takes
    the index one past the last declared state.
  - State: A named state with a Transition for read symbol 0 and one for read symbol 1.
  - Transition: The symbol to write, the head move, and the name of the next state.
    Any name that does not resolve to a declared state means HALT.
  - LifecycleHooks: Callbacks observing each compilation.
*/
package domain
