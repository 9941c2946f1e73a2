/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing machines.

It allows developers to define Turing machines using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for
generating machines, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/cssmachine/pkg/dsl"
	)

	func main() {
		machine, err := dsl.New("busy-beaver").
			TapeLength(6).
			State("A").
			On0().Write(1).Right().Goto("B").
			On1().Write(1).Left().Goto("B").
			State("B").
			On0().Write(1).Left().Goto("A").
			On1().Write(1).Right().Halt().
			Build()
		if err != nil {
			panic(err)
		}
		// ... pass machine to cssmachine.New().Compile(ctx, machine)
	}
*/
package dsl
