package storage

// PropertyTypeString is the only property type the configuration UI
// currently renders for user-storage providers.
const PropertyTypeString = "String"

// ConfigProperty describes one configuration field to the host's UI.
type ConfigProperty struct {
	Name         string
	Label        string
	Type         string
	HelpText     string
	DefaultValue string
}

// SchemaBuilder assembles an ordered configuration schema.
//
//	schema := storage.NewSchemaBuilder().
//		Property("Url").Label("Url").HelpText("...").Default("...").Add().
//		Build()
type SchemaBuilder struct {
	properties []ConfigProperty
}

// NewSchemaBuilder returns an empty schema builder.
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Property starts a new field descriptor. Type defaults to
// PropertyTypeString and the label defaults to the name.
func (b *SchemaBuilder) Property(name string) *PropertyBuilder {
	return &PropertyBuilder{
		schema: b,
		property: ConfigProperty{
			Name:  name,
			Label: name,
			Type:  PropertyTypeString,
		},
	}
}

// Build returns the accumulated descriptors in declaration order.
func (b *SchemaBuilder) Build() []ConfigProperty {
	return b.properties
}

// PropertyBuilder configures a single field descriptor.
type PropertyBuilder struct {
	schema   *SchemaBuilder
	property ConfigProperty
}

func (p *PropertyBuilder) Label(label string) *PropertyBuilder {
	p.property.Label = label
	return p
}

func (p *PropertyBuilder) Type(propertyType string) *PropertyBuilder {
	p.property.Type = propertyType
	return p
}

func (p *PropertyBuilder) HelpText(text string) *PropertyBuilder {
	p.property.HelpText = text
	return p
}

func (p *PropertyBuilder) Default(value string) *PropertyBuilder {
	p.property.DefaultValue = value
	return p
}

// Add appends the descriptor to the schema and returns the builder for
// the next property.
func (p *PropertyBuilder) Add() *SchemaBuilder {
	p.schema.properties = append(p.schema.properties, p.property)
	return p.schema
}
