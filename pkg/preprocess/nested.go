package preprocess

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// normalizeNested is the nested-field-normalization pass. Every nested
// field's sub-spec is run back through the shorthand passes, and any refs
// the recursion produces are hoisted into the outer spec's top-level refs.
func (p *Pipeline) normalizeNested(raw spec.RawSpec) (spec.RawSpec, error) {
	updated := make(spec.RawSpec, len(raw))
	for key, body := range raw {
		if key == spec.RefsKey {
			refs, ok := body.(map[string]interface{})
			if !ok {
				return nil, spec.Errorf(spec.CodeInvalidSpec, "refs must be a mapping, got %T", body)
			}
			processed, err := p.reprocess(refs)
			if err != nil {
				return nil, err
			}
			// recursion inside refs may hoist refs of its own; flatten
			// those before merging the entries themselves
			p.hoistRefs(updated, processed)
			p.mergeTopRefs(updated, spec.RawSpec{spec.RefsKey: processed})
			continue
		}

		bodyMap, ok := body.(map[string]interface{})
		if !ok || bodyMap[spec.TypeKey] != spec.TypeNested {
			updated[key] = body
			continue
		}

		fields, ok := bodyMap[spec.FieldsKey].(map[string]interface{})
		if !ok {
			return nil, spec.Errorf(spec.CodeMalformedNested, "missing fields key for nested spec %s", key)
		}
		processed, err := p.reprocess(fields)
		if err != nil {
			return nil, err
		}
		p.hoistRefs(updated, processed)

		newBody := make(map[string]interface{}, len(bodyMap))
		for k, v := range bodyMap {
			newBody[k] = v
		}
		newBody[spec.FieldsKey] = processed
		updated[key] = newBody
	}
	return updated, nil
}

// reprocess runs the shorthand passes over a sub-spec so nested structures
// reach the same canonical form as the top level
func (p *Pipeline) reprocess(sub spec.RawSpec) (spec.RawSpec, error) {
	processed, err := p.extractParams(sub)
	if err != nil {
		return nil, err
	}
	processed, err = p.expandCSVSelect(processed)
	if err != nil {
		return nil, err
	}
	return p.normalizeNested(processed)
}

// hoistRefs pops any refs entry out of the processed sub-spec and merges it
// into the outer spec's top-level refs
func (p *Pipeline) hoistRefs(updated, processed spec.RawSpec) {
	refs, ok := processed[spec.RefsKey].(map[string]interface{})
	if !ok {
		return
	}
	delete(processed, spec.RefsKey)
	p.mergeTopRefs(updated, spec.RawSpec{spec.RefsKey: refs})
}

// mergeTopRefs merges the refs mapping of src into the refs mapping of dst.
// Collisions across nesting levels are last-write-wins; they usually point
// at a configuration bug, so each one is logged.
func (p *Pipeline) mergeTopRefs(dst spec.RawSpec, src spec.RawSpec) {
	incoming, ok := src[spec.RefsKey].(map[string]interface{})
	if !ok || len(incoming) == 0 {
		return
	}
	existing, ok := dst[spec.RefsKey].(map[string]interface{})
	if !ok {
		existing = make(map[string]interface{}, len(incoming))
		dst[spec.RefsKey] = existing
	}
	for name, entry := range incoming {
		if _, collides := existing[name]; collides {
			p.logger.Warn("ref name collision while hoisting nested refs, keeping the later definition",
				zap.String("ref", name))
		}
		existing[name] = entry
	}
}
