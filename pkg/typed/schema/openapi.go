package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// OpenApiFile is the part of an OpenAPI document types are read from.
type OpenApiFile struct {
	Components OpenApiComponents `yaml:"components"`
}

type OpenApiComponents struct {
	Schemas OrderedSchemas `yaml:"schemas"`
}

type OpenApiSchema struct {
	Type        string         `yaml:"type"`
	Ref         *string        `yaml:"$ref"`
	Description string         `yaml:"description"`
	Properties  OrderedSchemas `yaml:"properties"`
	Items       *OpenApiSchema `yaml:"items"`
	MinItems    *int           `yaml:"minItems"`
	MaxItems    *int           `yaml:"maxItems"`
}

// OrderedSchemas is a YAML mapping of named schemas that remembers the order
// the names were declared in. Object attributes are created in that order.
type OrderedSchemas struct {
	Names   []string
	Schemas map[string]OpenApiSchema
}

func (o *OrderedSchemas) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of schemas", node.Line)
	}

	o.Names = make([]string, 0, len(node.Content)/2)
	o.Schemas = make(map[string]OpenApiSchema, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var s OpenApiSchema
		if err := node.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf(`failed to decode schema "%s": %w`, name, err)
		}

		o.Names = append(o.Names, name)
		o.Schemas[name] = s
	}

	return nil
}

// Model is a named type read from the components of an OpenAPI file.
type Model struct {
	Name        string
	Description string
	Type        typed.Type
}

type AbsoluteFilePath = string
type ModelName = string

type context struct {
	Files map[AbsoluteFilePath]*fileContext
}

type fileContext struct {
	File      *OpenApiFile
	Models    map[ModelName]*Model
	Resolving map[ModelName]bool
}

// ReadOpenApiModels reads the component schemas of the given OpenAPI files as
// types. References to schemas in the same or other files
// (`other.yaml#/components/schemas/Name`) are inlined. Files that are only
// referenced are read too and included in the result. Models of a file are
// returned in declaration order.
func ReadOpenApiModels(filePaths []AbsoluteFilePath) (map[AbsoluteFilePath][]Model, error) {
	ctx := &context{
		Files: make(map[AbsoluteFilePath]*fileContext),
	}

	for _, p := range filePaths {
		if err := resolveFile(ctx, p); err != nil {
			return nil, err
		}
	}

	models := make(map[AbsoluteFilePath][]Model)
	for path, f := range ctx.Files {
		fileModels := make([]Model, 0, len(f.Models))

		for _, name := range f.File.Components.Schemas.Names {
			fileModels = append(fileModels, *f.Models[name])
		}

		models[path] = fileModels
	}

	return models, nil
}

func resolveFile(ctx *context, filePath AbsoluteFilePath) error {
	if _, ok := ctx.Files[filePath]; ok {
		return nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf(`failed to read OpenAPI file "%s": %w`, filePath, err)
	}

	var file OpenApiFile
	if err := yaml.Unmarshal(fileData, &file); err != nil {
		return fmt.Errorf(`failed to unmarshal OpenAPI file "%s": %w`, filePath, err)
	}

	ctx.Files[filePath] = &fileContext{
		File:      &file,
		Models:    make(map[ModelName]*Model),
		Resolving: make(map[ModelName]bool),
	}

	var errs error
	for _, name := range file.Components.Schemas.Names {
		if _, err := resolveRootModel(ctx, filePath, name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf(`in OpenAPI file "%s": %w`, filePath, err))
		}
	}

	return errs
}

func resolveRootModel(ctx *context, filePath AbsoluteFilePath, name ModelName) (*Model, error) {
	fileCtx := ctx.Files[filePath]

	if m, ok := fileCtx.Models[name]; ok {
		return m, nil
	}

	schema, ok := fileCtx.File.Components.Schemas.Schemas[name]
	if !ok {
		return nil, fmt.Errorf(`unknown schema "%s"`, name)
	}

	if fileCtx.Resolving[name] {
		return nil, fmt.Errorf(`schema "%s" references itself`, name)
	}

	fileCtx.Resolving[name] = true
	defer delete(fileCtx.Resolving, name)

	t, err := resolveType(ctx, schema, filePath)
	if err != nil {
		return nil, fmt.Errorf(`failed to resolve schema "%s": %w`, name, err)
	}

	m := &Model{
		Name:        name,
		Description: schema.Description,
		Type:        t,
	}

	fileCtx.Models[name] = m
	return m, nil
}

func resolveType(ctx *context, schema OpenApiSchema, filePath AbsoluteFilePath) (typed.Type, error) {
	if schema.Ref != nil {
		m, err := resolveReference(ctx, *schema.Ref, filePath)
		if err != nil {
			return typed.Type{}, err
		}

		return m.Type, nil
	}

	switch Type(schema.Type) {
	case TypeObject:
		return resolveObject(ctx, schema, filePath)
	case TypeArray:
		return resolveArray(ctx, schema, filePath)
	case TypeBoolean, TypeNumber, TypeInteger, TypeString:
		return FromSchema(&Descriptor{Type: Type(schema.Type)}), nil
	case "":
		return typed.Unknown(), nil
	}

	return typed.Type{}, fmt.Errorf(`unsupported OpenAPI schema type "%s"`, schema.Type)
}

func resolveReference(ctx *context, ref string, filePath AbsoluteFilePath) (*Model, error) {
	const refPath = "#/components/schemas/"

	parts := strings.Split(ref, refPath)
	if len(parts) != 2 {
		return nil, fmt.Errorf(`couldn't parse reference "%s"`, ref)
	}

	modelName := parts[1]

	if len(parts[0]) == 0 {
		return resolveRootModel(ctx, filePath, modelName)
	}

	refFilePath := filepath.Join(filepath.Dir(filePath), parts[0])

	if err := resolveFile(ctx, refFilePath); err != nil {
		return nil, err
	}

	return resolveRootModel(ctx, refFilePath, modelName)
}

func resolveObject(ctx *context, schema OpenApiSchema, filePath AbsoluteFilePath) (typed.Type, error) {
	if len(schema.Properties.Names) == 0 {
		return typed.Unknown(), nil
	}

	attrs := make([]typed.Attribute, 0, len(schema.Properties.Names))

	for _, pn := range schema.Properties.Names {
		pt, err := resolveType(ctx, schema.Properties.Schemas[pn], filePath)
		if err != nil {
			return typed.Type{}, fmt.Errorf(`property "%s": %w`, pn, err)
		}

		attrs = append(attrs, typed.Attribute{ID: pn, Type: pt})
	}

	return typed.ObjectType(attrs...), nil
}

func resolveArray(ctx *context, schema OpenApiSchema, filePath AbsoluteFilePath) (typed.Type, error) {
	if schema.Items == nil {
		return typed.ArrayType(typed.Unknown(), typed.DynamicLength), nil
	}

	it, err := resolveType(ctx, *schema.Items, filePath)
	if err != nil {
		return typed.Type{}, err
	}

	length := fixedLength(&Descriptor{MinItems: schema.MinItems, MaxItems: schema.MaxItems})
	return typed.ArrayType(it, length), nil
}
