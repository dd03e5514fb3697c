package lifecycle

import "slices"

// Builder provides a fluent API for constructing lifecycle definitions.
type Builder struct {
	def *Definition
}

// NewBuilder creates a new definition builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		def: &Definition{
			Name:       name,
			Tags:       []Tag{},
			Terminals:  []Tag{},
			Rules:      []Rule{},
			Acks:       []Ack{},
			Rejections: []Rejection{},
		},
	}
}

// WithInitial sets the initial tag.
func (b *Builder) WithInitial(tag Tag) *Builder {
	b.def.Initial = tag
	b.addTag(tag)

	return b
}

// WithTerminals marks tags as terminal.
func (b *Builder) WithTerminals(tags ...Tag) *Builder {
	for _, tag := range tags {
		b.addTag(tag)
	}

	b.def.Terminals = append(b.def.Terminals, tags...)

	return b
}

// Permit adds a transition rule. The tags are added to the definition's
// closed set as a side effect.
func (b *Builder) Permit(from Tag, action Action, to Tag, message string) *Builder {
	b.addTag(from)
	b.addTag(to)

	b.def.Rules = append(b.def.Rules, Rule{
		From:    from,
		Action:  action,
		To:      to,
		Message: message,
	})

	return b
}

// Acknowledge marks an action as a harmless no-op at a tag.
func (b *Builder) Acknowledge(at Tag, action Action, message string) *Builder {
	b.addTag(at)

	b.def.Acks = append(b.def.Acks, Ack{
		At:      at,
		Action:  action,
		Message: message,
	})

	return b
}

// RejectWith overrides the rejection wording for a (tag, action) pair.
func (b *Builder) RejectWith(at Tag, action Action, message string) *Builder {
	b.addTag(at)

	b.def.Rejections = append(b.def.Rejections, Rejection{
		At:      at,
		Action:  action,
		Message: message,
	})

	return b
}

// Build validates and returns the definition.
func (b *Builder) Build() (*Definition, error) {
	err := b.def.Validate()
	if err != nil {
		return nil, WrapDefinitionError(b.def.Name, err)
	}

	return b.def, nil
}

// MustBuild is like Build but panics on an invalid definition. It is meant
// for package-level definitions whose tables are fixed at compile time.
func (b *Builder) MustBuild() *Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}

	return def
}

func (b *Builder) addTag(tag Tag) {
	if tag != "" && !slices.Contains(b.def.Tags, tag) {
		b.def.Tags = append(b.def.Tags, tag)
	}
}
