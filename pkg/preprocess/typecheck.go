package preprocess

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// checkTypes is the type-existence-check pass. It never mutates or fails:
// unknown types are tolerated at preprocessing time so callers can register
// custom types after spec load but before generation.
func (p *Pipeline) checkTypes(raw spec.RawSpec) (spec.RawSpec, error) {
	for key, body := range raw {
		if key == spec.FieldGroupsKey {
			continue
		}
		if key == spec.RefsKey {
			if refs, ok := body.(map[string]interface{}); ok {
				if _, err := p.checkTypes(refs); err != nil {
					return nil, err
				}
			}
			continue
		}
		bodyMap, ok := body.(map[string]interface{})
		if !ok {
			continue
		}
		typeName, _ := bodyMap[spec.TypeKey].(string)
		if !p.registry.HasType(typeName) {
			p.logger.Warn("unknown type for field",
				zap.String("field", key),
				zap.String("type", typeName),
				zap.Strings("known_types", p.registry.RegisteredTypes()))
		}
	}
	return raw, nil
}
