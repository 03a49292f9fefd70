package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/model"
)

var validate = validator.New()

type outcome int

const (
	pass outcome = iota
	fail
	typeMismatch
)

// checkFunc evaluates a single rule against a non-empty value. record carries
// the whole form so cross-field rules can read their references.
type checkFunc func(value any, record model.Record) outcome

type compiledRule struct {
	kind    string
	message string
	ref     string
	check   checkFunc
}

type ruleBuilder func(field model.Field, rule model.ValidationRule) (compiledRule, error)

var ruleBuilders = map[string]ruleBuilder{
	model.ValidationRuleRequired:  buildRequired,
	model.ValidationRulePattern:   buildPattern,
	model.ValidationRuleEmail:     buildEmail,
	model.ValidationRuleMinLength: buildLength(true),
	model.ValidationRuleMaxLength: buildLength(false),
	model.ValidationRuleType:      buildType,
	model.ValidationRuleMin:       buildBound(true),
	model.ValidationRuleMax:       buildBound(false),
	model.ValidationRuleOneOf:     buildOneOf,
	model.ValidationRuleMinItems:  buildItems(true),
	model.ValidationRuleMaxItems:  buildItems(false),
	model.ValidationRuleDate:      buildDate,
}

// applicable lists the field types each rule kind accepts. Kinds missing from
// the map apply to every type.
var applicable = map[string][]model.FieldType{
	model.ValidationRulePattern:   {model.FieldTypeString},
	model.ValidationRuleEmail:     {model.FieldTypeString},
	model.ValidationRuleMinLength: {model.FieldTypeString},
	model.ValidationRuleMaxLength: {model.FieldTypeString},
	model.ValidationRuleType:      {model.FieldTypeNumber, model.FieldTypeDate, model.FieldTypeArray},
	model.ValidationRuleMin:       {model.FieldTypeNumber},
	model.ValidationRuleMax:       {model.FieldTypeNumber},
	model.ValidationRuleOneOf:     {model.FieldTypeString, model.FieldTypeNumber, model.FieldTypeDate},
	model.ValidationRuleMinItems:  {model.FieldTypeArray},
	model.ValidationRuleMaxItems:  {model.FieldTypeArray},
	model.ValidationRuleDate:      {model.FieldTypeDate},
}

func compileRule(field model.Field, index int, rule model.ValidationRule) (compiledRule, error) {
	build, ok := ruleBuilders[rule.Kind]
	if !ok {
		return compiledRule{}, ruleError(field.Name, index, rule.Kind, errors.Newf("unknown rule kind %q", rule.Kind))
	}
	if types, ok := applicable[rule.Kind]; ok && !containsType(types, field.Type) {
		return compiledRule{}, ruleError(field.Name, index, rule.Kind, errors.Newf("rule does not apply to %s fields", field.Type))
	}
	compiled, err := build(field, rule)
	if err != nil {
		return compiledRule{}, ruleError(field.Name, index, rule.Kind, err)
	}
	compiled.kind = rule.Kind
	if rule.Message != "" {
		compiled.message = rule.Message
	}
	return compiled, nil
}

func containsType(types []model.FieldType, t model.FieldType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func buildRequired(field model.Field, _ model.ValidationRule) (compiledRule, error) {
	return compiledRule{
		message: fmt.Sprintf("%s is required", field.DisplayLabel()),
		check: func(value any, _ model.Record) outcome {
			if isEmpty(value) {
				return fail
			}
			return pass
		},
	}, nil
}

func buildPattern(field model.Field, rule model.ValidationRule) (compiledRule, error) {
	expr := rule.Param(model.ParamPattern)
	if expr == "" {
		return compiledRule{}, errors.New("pattern parameter is required")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return compiledRule{}, errors.Wrapf(err, "compile pattern %q", expr)
	}
	return compiledRule{
		message: fmt.Sprintf("%s is invalid", field.DisplayLabel()),
		check: func(value any, _ model.Record) outcome {
			if re.MatchString(asString(value)) {
				return pass
			}
			return fail
		},
	}, nil
}

func buildEmail(field model.Field, _ model.ValidationRule) (compiledRule, error) {
	return compiledRule{
		message: fmt.Sprintf("%s must be a valid email", field.DisplayLabel()),
		check: func(value any, _ model.Record) outcome {
			if err := validate.Var(strings.TrimSpace(asString(value)), "email"); err != nil {
				return fail
			}
			return pass
		},
	}, nil
}

func buildLength(lower bool) ruleBuilder {
	return func(field model.Field, rule model.ValidationRule) (compiledRule, error) {
		limit, err := parseCount(rule)
		if err != nil {
			return compiledRule{}, err
		}
		message := fmt.Sprintf("%s must be at most %d characters", field.DisplayLabel(), limit)
		if lower {
			message = fmt.Sprintf("%s must be at least %d characters", field.DisplayLabel(), limit)
		}
		return compiledRule{
			message: message,
			check: func(value any, _ model.Record) outcome {
				n := utf8.RuneCountInString(asString(value))
				if (lower && n < limit) || (!lower && n > limit) {
					return fail
				}
				return pass
			},
		}, nil
	}
}

func buildType(field model.Field, _ model.ValidationRule) (compiledRule, error) {
	layout := dateLayout(field)
	return compiledRule{
		message: defaultTypeMessage(field),
		check: func(value any, _ model.Record) outcome {
			var ok bool
			switch field.Type {
			case model.FieldTypeNumber:
				_, ok = asNumber(value)
			case model.FieldTypeDate:
				_, ok = asDate(value, layout)
			case model.FieldTypeArray:
				_, ok = asStrings(value)
			}
			if !ok {
				return fail
			}
			return pass
		},
	}, nil
}

func buildBound(lower bool) ruleBuilder {
	return func(field model.Field, rule model.ValidationRule) (compiledRule, error) {
		raw := rule.Param(model.ParamValue)
		limit, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return compiledRule{}, errors.Newf("value parameter %q is not a number", raw)
		}
		message := fmt.Sprintf("%s must be less than or equal to %s", field.DisplayLabel(), raw)
		if lower {
			message = fmt.Sprintf("%s must be greater than or equal to %s", field.DisplayLabel(), raw)
		}
		return compiledRule{
			message: message,
			check: func(value any, _ model.Record) outcome {
				n, ok := asNumber(value)
				if !ok {
					return typeMismatch
				}
				if (lower && n < limit) || (!lower && n > limit) {
					return fail
				}
				return pass
			},
		}, nil
	}
}

func buildOneOf(field model.Field, rule model.ValidationRule) (compiledRule, error) {
	ref := strings.TrimSpace(rule.Param(model.ParamRef))
	values := splitValues(rule.Param(model.ParamValues))
	if ref == "" && len(values) == 0 {
		return compiledRule{}, errors.New("oneOf requires a ref or values parameter")
	}
	if ref == field.Name {
		return compiledRule{}, errors.New("oneOf cannot reference its own field")
	}

	message := fmt.Sprintf("%s must be one of: %s", field.DisplayLabel(), strings.Join(values, ", "))
	if ref != "" {
		message = fmt.Sprintf("%s must match %s", field.DisplayLabel(), ref)
	}

	return compiledRule{
		message: message,
		ref:     ref,
		check: func(value any, record model.Record) outcome {
			candidate := asString(value)
			if ref != "" {
				if other, ok := record[ref]; ok && !isEmpty(other) && asString(other) == candidate {
					return pass
				}
			}
			for _, allowed := range values {
				if allowed == candidate {
					return pass
				}
			}
			return fail
		},
	}, nil
}

func buildItems(lower bool) ruleBuilder {
	return func(field model.Field, rule model.ValidationRule) (compiledRule, error) {
		limit, err := parseCount(rule)
		if err != nil {
			return compiledRule{}, err
		}
		message := fmt.Sprintf("%s must have at most %d items", field.DisplayLabel(), limit)
		if lower {
			message = fmt.Sprintf("%s must have at least %d items", field.DisplayLabel(), limit)
		}
		return compiledRule{
			message: message,
			check: func(value any, _ model.Record) outcome {
				items, ok := asStrings(value)
				if !ok {
					return typeMismatch
				}
				if (lower && len(items) < limit) || (!lower && len(items) > limit) {
					return fail
				}
				return pass
			},
		}, nil
	}
}

func buildDate(field model.Field, rule model.ValidationRule) (compiledRule, error) {
	layout := rule.Param(model.ParamLayout)
	if layout == "" {
		layout = dateLayout(field)
	}
	return compiledRule{
		message: defaultTypeMessage(field),
		check: func(value any, _ model.Record) outcome {
			if _, ok := asDate(value, layout); !ok {
				return fail
			}
			return pass
		},
	}, nil
}

func parseCount(rule model.ValidationRule) (int, error) {
	raw := rule.Param(model.ParamValue)
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Newf("value parameter %q is not an integer", raw)
	}
	if limit < 0 {
		return 0, errors.Newf("value parameter %d must not be negative", limit)
	}
	return limit, nil
}

func splitValues(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func dateLayout(field model.Field) string {
	for _, rule := range field.Validations {
		if rule.Kind == model.ValidationRuleDate {
			if layout := rule.Param(model.ParamLayout); layout != "" {
				return layout
			}
		}
	}
	return model.DefaultDateLayout
}

func defaultTypeMessage(field model.Field) string {
	switch field.Type {
	case model.FieldTypeNumber:
		return fmt.Sprintf("%s must be a number", field.DisplayLabel())
	case model.FieldTypeDate:
		return fmt.Sprintf("%s must be a valid date", field.DisplayLabel())
	case model.FieldTypeArray:
		return fmt.Sprintf("%s must be a list of values", field.DisplayLabel())
	default:
		return fmt.Sprintf("%s has an invalid value", field.DisplayLabel())
	}
}
