package domain

// Messages holds every user-visible string the form produces. Zero-valued
// entries fall back to DefaultMessages via WithDefaults.
type Messages struct {
	NameRequired    string `yaml:"name_required"`
	EmailRequired   string `yaml:"email_required"`
	EmailInvalid    string `yaml:"email_invalid"`
	MessageRequired string `yaml:"message_required"`
	Success         string `yaml:"success"`
	RelayFallback   string `yaml:"relay_fallback"`
	NetworkError    string `yaml:"network_error"`
}

// DefaultMessages returns the stock English copy.
func DefaultMessages() Messages {
	return Messages{
		NameRequired:    "Please enter your name",
		EmailRequired:   "Please enter your email",
		EmailInvalid:    "Please enter a valid email address",
		MessageRequired: "Please enter your message",
		Success:         "Thank you! Your message has been sent successfully.",
		RelayFallback:   "Oops! There was a problem submitting your form.",
		NetworkError:    "Network error. Please check your connection and try again.",
	}
}

// WithDefaults fills empty entries from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Messages{
		NameRequired:    pick(m.NameRequired, d.NameRequired),
		EmailRequired:   pick(m.EmailRequired, d.EmailRequired),
		EmailInvalid:    pick(m.EmailInvalid, d.EmailInvalid),
		MessageRequired: pick(m.MessageRequired, d.MessageRequired),
		Success:         pick(m.Success, d.Success),
		RelayFallback:   pick(m.RelayFallback, d.RelayFallback),
		NetworkError:    pick(m.NetworkError, d.NetworkError),
	}
}

// Required returns the empty-field message for a required field id.
func (m Messages) Required(fieldID string) string {
	switch fieldID {
	case FieldName:
		return m.NameRequired
	case FieldEmail:
		return m.EmailRequired
	case FieldMessage:
		return m.MessageRequired
	default:
		return "Please fill in this field"
	}
}
