package contact

// Clearer removes stale error marks as the user edits fields. It never
// re-validates.
type Clearer struct {
	fields map[string]FieldBinding
}

func NewClearer(bindings []FieldBinding) *Clearer {
	fields := make(map[string]FieldBinding, len(bindings))
	for _, b := range bindings {
		if b.Input == nil {
			continue
		}
		fields[b.ID] = b
	}
	return &Clearer{fields: fields}
}

// OnInput handles an edit of fieldID. If the field is marked invalid its mark
// and message are cleared and true is returned. Unknown ids are ignored.
func (c *Clearer) OnInput(fieldID string) bool {
	b, ok := c.fields[fieldID]
	if !ok || !b.Input.Invalid() {
		return false
	}
	b.Input.SetInvalid(false)
	if b.Error != nil {
		b.Error.SetText("")
	}
	return true
}
