package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeArray  FieldType = "array"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeDate, FieldTypeArray:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleRequired  = "required"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleType      = "type"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleOneOf     = "oneOf"
	ValidationRuleMinItems  = "minItems"
	ValidationRuleMaxItems  = "maxItems"
	ValidationRuleDate      = "date"
)

// Rule parameter keys.
const (
	ParamValue   = "value"
	ParamPattern = "pattern"
	ParamRef     = "ref"
	ParamValues  = "values"
	ParamLayout  = "layout"
)

// DefaultDateLayout is the layout used by date fields that do not declare one.
const DefaultDateLayout = "2006-01-02"

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"],
// pattern rules keep the expression in Params["pattern"] and oneOf rules name
// a sibling field in Params["ref"] and/or a comma separated list in
// Params["values"].
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind" toml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

// Param returns the named parameter or an empty string.
func (r ValidationRule) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[key]
}

// Field models an individual input inside a form definition.
type Field struct {
	Name        string           `json:"name" yaml:"name" toml:"name"`
	Type        FieldType        `json:"type" yaml:"type" toml:"type"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Secret      bool             `json:"secret,omitempty" yaml:"secret,omitempty" toml:"secret,omitempty"`
	Widget      string           `json:"widget,omitempty" yaml:"widget,omitempty" toml:"widget,omitempty"`
	Default     any              `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Options     []string         `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty" toml:"validations,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Required reports whether the field declares a required rule.
func (f Field) Required() bool {
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleRequired {
			return true
		}
	}
	return false
}

// FormModel is the top-level form definition.
type FormModel struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" toml:"fields"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
