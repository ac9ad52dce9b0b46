package preprocess

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// expandCSVSelect is the csv-shorthand-expansion pass. A csv_select field
// with a data mapping of output-field-name to column expands into sibling
// csv fields that share one hoisted config_ref entry holding the common CSV
// configuration.
func (p *Pipeline) expandCSVSelect(raw spec.RawSpec) (spec.RawSpec, error) {
	updated := make(spec.RawSpec, len(raw))
	hoisted := make(map[string]interface{})

	for key, body := range raw {
		if key == spec.RefsKey {
			// merged with hoisted entries below
			continue
		}
		bodyMap, ok := body.(map[string]interface{})
		if !ok || bodyMap[spec.TypeKey] != spec.TypeCSVSelect {
			updated[key] = body
			continue
		}

		configRefName := key + "_config_ref"
		config, _ := bodyMap[spec.ConfigKey].(map[string]interface{})
		if config == nil {
			config = make(map[string]interface{})
		}
		hoisted[configRefName] = map[string]interface{}{
			spec.TypeKey:   spec.TypeConfigRef,
			spec.ConfigKey: config,
		}

		columns, ok := bodyMap[spec.DataKey].(map[string]interface{})
		if !ok {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "csv_select data must map field names to columns, got %T", bodyMap[spec.DataKey])
		}
		for name, column := range columns {
			fieldForColumn := map[string]interface{}{
				spec.TypeKey: spec.TypeCSV,
				spec.ConfigKey: map[string]interface{}{
					"column":     column,
					"config_ref": configRefName,
				},
			}
			if _, exists := raw[name]; exists {
				// disambiguate against an already declared field
				name = name + "-" + cast.ToString(column)
			}
			updated[name] = fieldForColumn
		}
	}

	refs, hasRefs := raw[spec.RefsKey].(map[string]interface{})
	if hasRefs || len(hoisted) > 0 {
		merged := make(map[string]interface{}, len(refs)+len(hoisted))
		for name, entry := range refs {
			merged[name] = entry
		}
		for name, entry := range hoisted {
			merged[name] = entry
		}
		updated[spec.RefsKey] = merged
	}
	return updated, nil
}
