package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
)

// FieldRule defines validation rules for a column
type FieldRule struct {
	Column     string
	Type       FieldType
	Required   bool
	MaxLength  int
	MinValue   *decimal.Decimal
	Unique     bool
	CustomFunc func(value string) error
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{Column: column, Type: TypeString},
	}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int sets the field type to integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength sets the maximum length in characters
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// Unique marks the field as unique within the file. Comparison ignores case.
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Custom sets a custom validation function
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows according to rules
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row number
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow validates all fields in a row and reports whether it passed
func (v *FieldValidator) ValidateRow(row *Row) bool {
	hasError := false

	for _, rule := range v.rules {
		column := rule.Column
		value := row.Get(column)

		if value == "" {
			if rule.Required {
				v.errors.AddRequiredError(row.LineNumber, column)
				hasError = true
			}
			continue
		}

		if err := validateType(value, rule.Type); err != nil {
			v.errors.AddTypeError(row.LineNumber, column, string(rule.Type), value)
			hasError = true
			continue
		}

		if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
			v.errors.AddLengthError(row.LineNumber, column, rule.MaxLength)
			hasError = true
		}

		if rule.MinValue != nil && rule.Type != TypeString {
			d, _ := decimal.NewFromString(value)
			if d.LessThan(*rule.MinValue) {
				v.errors.AddRangeError(row.LineNumber, column,
					fmt.Sprintf("value must be at least %s", rule.MinValue.String()), value)
				hasError = true
			}
		}

		if rule.Unique {
			key := strings.ToLower(value)
			if v.uniqueCheck[column] == nil {
				v.uniqueCheck[column] = make(map[string]int)
			}
			if firstRow, exists := v.uniqueCheck[column][key]; exists {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, column, ErrCodeImportDuplicateInFile,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstRow), value))
				hasError = true
			} else {
				v.uniqueCheck[column][key] = row.LineNumber
			}
		}

		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(value); err != nil {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, column, ErrCodeImportValidation, err.Error(), value))
				hasError = true
			}
		}
	}

	return !hasError
}

func validateType(value string, fieldType FieldType) error {
	switch fieldType {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	}
	return nil
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}
