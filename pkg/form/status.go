package form

// Status is the per-field interaction state.
type Status int

const (
	// StatusPristine means the field has not received any interaction.
	StatusPristine Status = iota
	// StatusTouched means the field changed or blurred but has not been
	// validated yet (validation on that event is disabled).
	StatusTouched
	// StatusValid means the last validation passed.
	StatusValid
	// StatusInvalid means the last validation failed.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusPristine:
		return "pristine"
	case StatusTouched:
		return "touched"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
