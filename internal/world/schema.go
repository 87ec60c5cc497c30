package world

import "github.com/invopop/jsonschema"

// Schema returns the JSON schema of the world file format.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Definition))
	schema.Title = "Runner World"
	schema.Description = "Stage layout consumed by runner; place files in ~/.runner/worlds"
	return schema
}
