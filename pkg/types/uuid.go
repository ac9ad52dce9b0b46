package types

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerUUID registers the uuid type
func registerUUID(reg *registry.Registry) {
	reg.RegisterType(TypeUUID, uuidFactory)
}

// uuidFactory supplies a fresh random UUID per call. The variant config key
// selects the output form: standard (default) or hex for the undashed form.
func uuidFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}

	variant := "standard"
	if raw, ok := config["variant"]; ok {
		variant, _ = raw.(string)
	}

	switch variant {
	case "standard", "":
		return supplier.Func(func(_ int) interface{} {
			return uuid.NewString()
		}), nil
	case "hex":
		return supplier.Func(func(_ int) interface{} {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		}), nil
	default:
		return nil, spec.Errorf(spec.CodeConflictingConfig, "unknown uuid variant: %s", variant)
	}
}
