package domain

// Transition defines what the machine does after reading a symbol in a given state.
type Transition struct {
	Write Symbol `json:"write" yaml:"write"`
	Move  Move   `json:"move" yaml:"move"`

	// Next is the name of the state entered afterwards.
	// Empty, HALT, or any name that is not declared resolves to the halting state.
	Next string `json:"next,omitempty" yaml:"next,omitempty"`
}
