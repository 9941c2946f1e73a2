/*
Package cssmachine compiles a Turing machine description into a single HTML document
whose styling alone performs the machine's steps.

The document contains no script. Each step is driven by the reader pressing one
button; sibling selectors over checked radio buttons and checkboxes decide which
labels are visible, so every click lands on exactly the control that advances the
machine by one transition.

# Concept

The compiler lays the controls out once as a flat stream of sibling elements: the
current state, the head position, and the tape exist twice (buffers A and B), and a
single switch records which buffer is the source of the next step. Rules are then
generated against that layout: for every state and read symbol they reveal the
label that sets the destination state, writes the destination cell, and moves the
destination head. Pressing the visible labels in turn completes the step, after
which the buffers swap roles.

# Key Features

  - Deterministic Output: The same machine always compiles to byte-identical HTML.
  - No Execution: The compiler never runs the machine; it only plans and emits.
  - Hexagonal Architecture: The compiler is decoupled from its surfaces (CLI, HTTP, MCP)
    and from where machines and shared documents are stored (Loam, Redis, Memory).
  - Strict Contracts: Configurations are validated up front and every failure is reported.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/cssmachine"
		"github.com/aretw0/cssmachine/pkg/dsl"
	)

	func main() {
		machine, err := dsl.New("flipper").
			TapeLength(8).
			State("A").
			On0().Write(1).Left().Halt().
			On1().Write(0).Left().Goto("A").
			Build()
		if err != nil {
			log.Fatal(err)
		}

		html, err := cssmachine.New().Compile(context.Background(), machine)
		if err != nil {
			log.Fatal(err)
		}
		os.WriteFile("flipper.html", []byte(html), 0644)
	}
*/
package cssmachine
