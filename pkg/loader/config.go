package loader

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// ConfigRefKey names the config entry that points at a shared config_ref
// refs entry
const ConfigRefKey = "config_ref"

// Config implements registry.Loader: it resolves the field's effective
// configuration. A config_ref entry supplies the base layer and the field's
// own config keys override it on conflict. Values stay raw; factories coerce
// and resolve sub-spec values lazily.
func (l *Loader) Config(fieldSpec *spec.FieldSpec) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(fieldSpec.Config))

	if refValue, ok := fieldSpec.Config[ConfigRefKey]; ok {
		refName := cast.ToString(refValue)
		entry, found := l.spec.RefEntry(refName)
		if !found {
			return nil, spec.Errorf(spec.CodeMissingReference, "config_ref %s not found in refs", refName)
		}
		if entry.Type != spec.TypeConfigRef {
			return nil, spec.Errorf(spec.CodeConflictingConfig, "refs entry %s is %s, not a config_ref", refName, entry.Type)
		}
		for key, value := range entry.Config {
			merged[key] = value
		}
	}

	for key, value := range fieldSpec.Config {
		merged[key] = value
	}

	// registry-supplied defaults fill remaining gaps lazily via Default;
	// nothing to merge here
	return merged, nil
}

// Default returns the registry default for a configuration key
func (l *Loader) Default(name string) interface{} {
	return l.registry.Default(name)
}
