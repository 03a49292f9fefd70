package validation

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrorMap holds at most one message per invalid field. Valid fields are
// absent, never mapped to an empty message.
type ErrorMap map[string]string

// Empty reports whether no field is invalid.
func (m ErrorMap) Empty() bool { return len(m) == 0 }

// Clone returns a copy of the map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Fields returns the invalid field names sorted alphabetically.
func (m ErrorMap) Fields() []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Schema is a compiled form definition. It is immutable after Compile and
// safe for concurrent readers.
type Schema struct {
	form       model.FormModel
	fields     []compiledField
	index      map[string]int
	dependents map[string][]string
}

type compiledField struct {
	field       model.Field
	rules       []compiledRule
	typeMessage string
}

// Compile checks the definition and prepares its rule table. Unknown rule
// kinds, patterns that do not compile, malformed bounds and references to
// undeclared fields are reported as errors marked with ErrInvalidDefinition.
func Compile(form model.FormModel) (*Schema, error) {
	if len(form.Fields) == 0 {
		return nil, formError(errors.Newf("form %q declares no fields", form.ID))
	}

	s := &Schema{
		form:       form,
		fields:     make([]compiledField, 0, len(form.Fields)),
		index:      make(map[string]int, len(form.Fields)),
		dependents: make(map[string][]string),
	}

	for _, field := range form.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, formError(errors.New("field name is required"))
		}
		if _, exists := s.index[field.Name]; exists {
			return nil, fieldError(field.Name, errors.New("duplicate field name"))
		}
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
		if !field.Type.Valid() {
			return nil, fieldError(field.Name, errors.Newf("unknown field type %q", field.Type))
		}

		compiled := compiledField{
			field:       field,
			rules:       make([]compiledRule, 0, len(field.Validations)),
			typeMessage: defaultTypeMessage(field),
		}
		for idx, rule := range field.Validations {
			cr, err := compileRule(field, idx, rule)
			if err != nil {
				return nil, err
			}
			if (cr.kind == model.ValidationRuleType || cr.kind == model.ValidationRuleDate) && rule.Message != "" {
				compiled.typeMessage = rule.Message
			}
			compiled.rules = append(compiled.rules, cr)
		}

		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, compiled)
	}

	direct := make(map[string][]string)
	for _, cf := range s.fields {
		for idx, rule := range cf.rules {
			if rule.ref == "" {
				continue
			}
			if _, ok := s.index[rule.ref]; !ok {
				return nil, ruleError(cf.field.Name, idx, rule.kind, errors.Newf("references undeclared field %q", rule.ref))
			}
			direct[rule.ref] = appendUnique(direct[rule.ref], cf.field.Name)
		}
	}
	for _, cf := range s.fields {
		if deps := s.walkDependents(cf.field.Name, direct); len(deps) > 0 {
			s.dependents[cf.field.Name] = deps
		}
	}

	return s, nil
}

// MustCompile is like Compile but panics on error. Use it for definitions
// that ship with the binary.
func MustCompile(form model.FormModel) *Schema {
	s, err := Compile(form)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the form identifier.
func (s *Schema) ID() string { return s.form.ID }

// Form returns the definition the schema was compiled from.
func (s *Schema) Form() model.FormModel { return s.form }

// Fields returns the normalised field definitions in declaration order.
func (s *Schema) Fields() []model.Field {
	out := make([]model.Field, len(s.fields))
	for i, cf := range s.fields {
		out[i] = cf.field
	}
	return out
}

// Field looks up a normalised field definition by name.
func (s *Schema) Field(name string) (model.Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return model.Field{}, false
	}
	return s.fields[idx].field, true
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Dependents returns the fields whose rules read name, directly or through
// another dependent, in declaration order.
func (s *Schema) Dependents(name string) []string {
	return append([]string(nil), s.dependents[name]...)
}

// Defaults returns a record holding every declared field: the definition's
// default when present, otherwise "" for scalar fields and an empty list for
// array fields.
func (s *Schema) Defaults() model.Record {
	record := make(model.Record, len(s.fields))
	for _, cf := range s.fields {
		record[cf.field.Name] = defaultValue(cf.field)
	}
	return record
}

// Validate evaluates every field against record and returns the violations.
func (s *Schema) Validate(record model.Record) ErrorMap {
	errs := make(ErrorMap)
	for i := range s.fields {
		if msg, ok := s.fields[i].evaluate(record); !ok {
			errs[s.fields[i].field.Name] = msg
		}
	}
	return errs
}

// ValidateField evaluates a single field. The boolean is false when the field
// is invalid, in which case the message of the first failing rule is returned.
// Unknown fields are reported as valid.
func (s *Schema) ValidateField(name string, record model.Record) (string, bool) {
	idx, ok := s.index[name]
	if !ok {
		return "", true
	}
	return s.fields[idx].evaluate(record)
}

// Issues flattens errs into declaration order.
func (s *Schema) Issues(errs ErrorMap) []Issue {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(errs))
	for _, cf := range s.fields {
		if msg, ok := errs[cf.field.Name]; ok {
			out = append(out, Issue{Field: cf.field.Name, Label: cf.field.DisplayLabel(), Message: msg})
		}
	}
	return out
}

func (cf *compiledField) evaluate(record model.Record) (string, bool) {
	value := record[cf.field.Name]
	skipEmpty := cf.field.Type != model.FieldTypeArray && isEmpty(value)
	for _, rule := range cf.rules {
		if skipEmpty && rule.kind != model.ValidationRuleRequired {
			continue
		}
		switch rule.check(value, record) {
		case fail:
			return rule.message, false
		case typeMismatch:
			return cf.typeMessage, false
		}
	}
	return "", true
}

func (s *Schema) walkDependents(name string, direct map[string][]string) []string {
	seen := map[string]bool{name: true}
	queue := append([]string(nil), direct[name]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		queue = append(queue, direct[next]...)
	}
	delete(seen, name)
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for _, cf := range s.fields {
		if seen[cf.field.Name] {
			out = append(out, cf.field.Name)
		}
	}
	return out
}

func defaultValue(field model.Field) any {
	if field.Type == model.FieldTypeArray {
		if items, ok := asStrings(field.Default); ok && items != nil {
			return append([]string{}, items...)
		}
		return []string{}
	}
	if field.Default == nil {
		return ""
	}
	return asString(field.Default)
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
