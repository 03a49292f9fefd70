package model

// Record maps field names to their current raw values. Scalar fields hold
// strings (or decoded numbers/dates when loaded from a document) and array
// fields hold []string.
type Record map[string]any

// Clone returns a copy of the record. String slices are copied so callers can
// mutate the result without touching the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneValue(v)
		}
		return clone
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = cloneValue(v)
		}
		return clone
	default:
		return typed
	}
}
