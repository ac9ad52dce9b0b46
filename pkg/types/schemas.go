package types

import (
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/schema"
)

// registerSchemas registers validation schemas for the built-in types that
// benefit from strict-mode checking
func registerSchemas(reg *registry.Registry) {
	reg.RegisterSchema(TypeValues, func() *schema.Schema {
		return &schema.Schema{
			Type:     TypeValues,
			Required: []string{"data"},
			Properties: map[string]*schema.Property{
				"data": {Type: schema.TypeAny},
				"config": {Type: schema.TypeObject, Properties: map[string]*schema.Property{
					"sample": {OneOf: []*schema.Property{{Type: schema.TypeBoolean}, {Type: schema.TypeString}}},
					"count":  {Type: schema.TypeAny},
				}},
			},
		}
	})

	reg.RegisterSchema(TypeRange, func() *schema.Schema {
		return &schema.Schema{
			Type:     TypeRange,
			Required: []string{"data"},
			Properties: map[string]*schema.Property{
				"data": {Type: schema.TypeArray, Items: &schema.Property{Type: schema.TypeNumber}},
			},
		}
	})

	reg.RegisterSchema(TypeCombine, func() *schema.Schema {
		return &schema.Schema{
			Type: TypeCombine,
			Properties: map[string]*schema.Property{
				"refs":   {Type: schema.TypeArray, Items: &schema.Property{Type: schema.TypeString}},
				"fields": {Type: schema.TypeArray, Items: &schema.Property{Type: schema.TypeString}},
				"config": {Type: schema.TypeObject, Properties: map[string]*schema.Property{
					"join_with": {Type: schema.TypeString},
				}},
			},
		}
	})

	reg.RegisterSchema(TypeCalculate, func() *schema.Schema {
		return &schema.Schema{
			Type:     TypeCalculate,
			Required: []string{"formula"},
			Properties: map[string]*schema.Property{
				"formula": {Type: schema.TypeString},
				"refs":    {OneOf: []*schema.Property{{Type: schema.TypeArray}, {Type: schema.TypeObject}}},
				"fields":  {OneOf: []*schema.Property{{Type: schema.TypeArray}, {Type: schema.TypeObject}}},
			},
		}
	})

	reg.RegisterSchema(TypeUUID, func() *schema.Schema {
		return &schema.Schema{
			Type: TypeUUID,
			Properties: map[string]*schema.Property{
				"config": {Type: schema.TypeObject, Properties: map[string]*schema.Property{
					"variant": {Type: schema.TypeString, Enum: []string{"standard", "hex"}},
				}},
			},
		}
	})

	reg.RegisterSchema(TypeCSV, func() *schema.Schema {
		return &schema.Schema{
			Type: TypeCSV,
			Properties: map[string]*schema.Property{
				"config": {Type: schema.TypeObject, Properties: map[string]*schema.Property{
					"datafile":  {Type: schema.TypeString},
					"delimiter": {Type: schema.TypeString},
					"column":    {OneOf: []*schema.Property{{Type: schema.TypeString}, {Type: schema.TypeNumber}}},
				}},
			},
		}
	})
}
