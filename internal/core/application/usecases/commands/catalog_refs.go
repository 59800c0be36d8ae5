package commands

import (
	"context"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"
)

// catalogRefs loads catalog records once per command, however many items refer
// to them.
type catalogRefs struct {
	repos     CatalogRepoFactory
	colors    map[kernel.UUID]*catalog.Color
	parts     map[kernel.UUID]*catalog.Part
	templates map[kernel.UUID]*catalog.Template
}

func newCatalogRefs(repos CatalogRepoFactory) *catalogRefs {
	return &catalogRefs{
		repos:     repos,
		colors:    make(map[kernel.UUID]*catalog.Color),
		parts:     make(map[kernel.UUID]*catalog.Part),
		templates: make(map[kernel.UUID]*catalog.Template),
	}
}

func (r *catalogRefs) color(ctx context.Context, id kernel.UUID) (*catalog.Color, error) {
	if c, ok := r.colors[id]; ok {
		return c, nil
	}
	c, err := r.repos.ColorRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.colors[id] = c
	return c, nil
}

func (r *catalogRefs) part(ctx context.Context, id kernel.UUID) (*catalog.Part, error) {
	if p, ok := r.parts[id]; ok {
		return p, nil
	}
	p, err := r.repos.PartRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.parts[id] = p
	return p, nil
}

func (r *catalogRefs) template(ctx context.Context, id kernel.UUID) (*catalog.Template, error) {
	if t, ok := r.templates[id]; ok {
		return t, nil
	}
	t, err := r.repos.TemplateRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.templates[id] = t
	return t, nil
}
