// Package spec defines the data-spec model shared by the preprocessor, the
// loader and the built-in field types: raw and canonical specifications,
// field declarations, and the structured SpecError type.
package spec

import (
	"sort"
)

// Reserved top-level keys in a specification
const (
	RefsKey        = "refs"
	FieldGroupsKey = "field_groups"
)

// Core keys a field body may carry. A mapping with none of these is treated
// as literal data shorthand.
const (
	TypeKey    = "type"
	DataKey    = "data"
	ConfigKey  = "config"
	RefKey     = "ref"
	FieldsKey  = "fields"
	FormulaKey = "formula"
)

// Well-known type names the engine gives special treatment
const (
	TypeValues    = "values"
	TypeNested    = "nested"
	TypeConfigRef = "config_ref"
	TypeCSV       = "csv"
	TypeCSVSelect = "csv_select"
)

// RawSpec is an undecoded specification mapping: field name (possibly in
// name:type?params shorthand) to field body. This is the input shape the
// preprocessor pipeline operates on.
type RawSpec = map[string]interface{}

// FieldSpec is one field's canonical declaration
type FieldSpec struct {
	// Type names the registered generator type. Empty means literal-data
	// shorthand and is resolved as "values" by the loader.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Data is the generation payload: a literal, a list, or a mapping
	Data interface{} `json:"data,omitempty" yaml:"data,omitempty"`

	// Config holds generation parameters as raw scalars or lists
	Config map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`

	// Ref names a single refs entry to draw from
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Refs names other fields or refs entries: a list of names or a
	// mapping of name to alias, depending on the type
	Refs interface{} `json:"refs,omitempty" yaml:"refs,omitempty"`

	// Fields carries a nested sub-spec (nested type) or a field alias
	// mapping (calculate type)
	Fields interface{} `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Formula is the expression evaluated by calculate types
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// ToMap converts the field spec back into its canonical mapping form
func (f *FieldSpec) ToMap() map[string]interface{} {
	out := make(map[string]interface{})
	if f.Type != "" {
		out[TypeKey] = f.Type
	}
	if f.Data != nil {
		out[DataKey] = f.Data
	}
	if f.Config != nil {
		out[ConfigKey] = f.Config
	}
	if f.Ref != "" {
		out[RefKey] = f.Ref
	}
	if f.Refs != nil {
		out[RefsKey] = f.Refs
	}
	if f.Fields != nil {
		out[FieldsKey] = f.Fields
	}
	if f.Formula != "" {
		out[FormulaKey] = f.Formula
	}
	return out
}

// IsEmpty reports whether the field spec carries no declaration at all
func (f *FieldSpec) IsEmpty() bool {
	return f.Type == "" && f.Data == nil && len(f.Config) == 0 &&
		f.Ref == "" && f.Refs == nil && f.Fields == nil && f.Formula == ""
}

// Spec is a fully preprocessed specification: every shorthand is expanded
// and every field body is a canonical FieldSpec
type Spec struct {
	// Fields maps output field name to its declaration
	Fields map[string]*FieldSpec

	// Refs holds field-like entries usable only via reference
	Refs map[string]*FieldSpec

	// FieldGroups is passed through unmodified for output shaping
	FieldGroups interface{}
}

// FieldNames returns the output field names in deterministic (sorted) order
func (s *Spec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field looks up a field declaration by name
func (s *Spec) Field(name string) (*FieldSpec, bool) {
	fs, ok := s.Fields[name]
	return fs, ok
}

// RefEntry looks up a refs entry by name
func (s *Spec) RefEntry(name string) (*FieldSpec, bool) {
	fs, ok := s.Refs[name]
	return fs, ok
}

// FieldOrRef looks up a name first among fields, then among refs. This is
// the resolution order reference-bearing types use.
func (s *Spec) FieldOrRef(name string) (*FieldSpec, bool) {
	if fs, ok := s.Fields[name]; ok {
		return fs, true
	}
	fs, ok := s.Refs[name]
	return fs, ok
}

// FieldFromValue converts a canonical field body into a FieldSpec. The body
// is either a mapping with core keys or bare literal data.
func FieldFromValue(value interface{}) (*FieldSpec, error) {
	body, ok := value.(map[string]interface{})
	if !ok {
		// bare literal shorthand
		return &FieldSpec{Type: TypeValues, Data: value}, nil
	}

	fs := &FieldSpec{}
	for key, val := range body {
		switch key {
		case TypeKey:
			s, ok := val.(string)
			if !ok {
				return nil, Errorf(CodeInvalidSpec, "field type must be a string, got %T", val)
			}
			fs.Type = s
		case DataKey:
			fs.Data = val
		case ConfigKey:
			cfg, ok := val.(map[string]interface{})
			if !ok {
				return nil, Errorf(CodeInvalidSpec, "field config must be a mapping, got %T", val)
			}
			fs.Config = cfg
		case RefKey:
			s, ok := val.(string)
			if !ok {
				return nil, Errorf(CodeInvalidSpec, "field ref must be a string, got %T", val)
			}
			fs.Ref = s
		case RefsKey:
			fs.Refs = val
		case FieldsKey:
			fs.Fields = val
		case FormulaKey:
			s, ok := val.(string)
			if !ok {
				return nil, Errorf(CodeInvalidSpec, "field formula must be a string, got %T", val)
			}
			fs.Formula = s
		}
	}

	if fs.IsEmpty() {
		return nil, Errorf(CodeInvalidSpec, "field spec carries no type, data, config, ref, refs or fields")
	}
	return fs, nil
}

// FromCanonical converts a canonical raw mapping (the preprocessor pipeline's
// output) into a typed Spec
func FromCanonical(canonical RawSpec) (*Spec, error) {
	out := &Spec{
		Fields: make(map[string]*FieldSpec),
		Refs:   make(map[string]*FieldSpec),
	}

	for name, body := range canonical {
		switch name {
		case FieldGroupsKey:
			out.FieldGroups = body
		case RefsKey:
			refs, ok := body.(map[string]interface{})
			if !ok {
				return nil, Errorf(CodeInvalidSpec, "refs must be a mapping, got %T", body)
			}
			for refName, refBody := range refs {
				fs, err := FieldFromValue(refBody)
				if err != nil {
					return nil, NewError(CodeInvalidSpec, "invalid refs entry "+refName, err)
				}
				out.Refs[refName] = fs
			}
		default:
			fs, err := FieldFromValue(body)
			if err != nil {
				return nil, NewError(CodeInvalidSpec, "invalid field "+name, err)
			}
			out.Fields[name] = fs
		}
	}

	return out, nil
}
