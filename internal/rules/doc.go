// Package rules compiles a machine's transition table into reveal rules.
//
// The compiled document has no variables, so every rule is a structural selector
// over the layout stream: "switch in orientation X, source state i selected,
// source head on a cell reading r" becomes a chain of sibling combinators whose
// hop counts come from the layout. A rule's only effect is to make one label
// visible. The visible label painted last is the control the operator clicks next.
package rules
