package loam

// MachineMetadata represents the frontmatter of a machine document.
// Fields stay loosely typed so strict-mode numbers (json.Number) and quoted
// values alike are normalized by the shared machine decoder.
type MachineMetadata struct {
	ID          string           `json:"id" mapstructure:"id"`
	Name        string           `json:"name" mapstructure:"name"`
	Description string           `json:"description" mapstructure:"description"`
	TapeLength  any              `json:"tape_length" mapstructure:"tape_length"`
	States      []map[string]any `json:"states" mapstructure:"states"`
}

func (m MachineMetadata) raw(id string) map[string]any {
	states := make([]any, 0, len(m.States))
	for _, s := range m.States {
		states = append(states, s)
	}
	raw := map[string]any{
		"id":     id,
		"name":   m.Name,
		"states": states,
	}
	if m.TapeLength != nil {
		raw["tape_length"] = m.TapeLength
	}
	return raw
}
