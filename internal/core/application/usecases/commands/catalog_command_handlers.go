package commands

import (
	"context"

	"printflow/internal/core/domain/model/catalog"
)

// SaveColorCommandHandler creates or updates colors. A taken name yields
// DuplicateKeyError.
type SaveColorCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSaveColorCommandHandler(uowFactory CatalogUoWFactory) SaveColorCommandHandler {
	return SaveColorCommandHandler{uowFactory: uowFactory}
}

func (h SaveColorCommandHandler) Handle(ctx context.Context, command SaveColorCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	colorRepo := uow.ColorRepository()
	if command.IsUpdate() {
		color, err := colorRepo.Get(ctx, command.ColorID())
		if err != nil {
			return err
		}
		if err = color.Update(command.Spec()); err != nil {
			return err
		}
		if err = colorRepo.Update(ctx, color); err != nil {
			return err
		}
	} else {
		color, err := catalog.NewColor(command.ColorID(), command.Spec())
		if err != nil {
			return err
		}
		if err = colorRepo.Add(ctx, color); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// SavePartCommandHandler creates or updates parts. A taken code or name yields
// DuplicateKeyError.
type SavePartCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSavePartCommandHandler(uowFactory CatalogUoWFactory) SavePartCommandHandler {
	return SavePartCommandHandler{uowFactory: uowFactory}
}

func (h SavePartCommandHandler) Handle(ctx context.Context, command SavePartCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partRepo := uow.PartRepository()
	if command.IsUpdate() {
		part, err := partRepo.Get(ctx, command.PartID())
		if err != nil {
			return err
		}
		if err = part.Update(command.Spec()); err != nil {
			return err
		}
		if err = partRepo.Update(ctx, part); err != nil {
			return err
		}
	} else {
		part, err := catalog.NewPart(command.PartID(), command.Spec())
		if err != nil {
			return err
		}
		if err = partRepo.Add(ctx, part); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// CreateTemplateCommandHandler stores a template after checking that every part
// exists and is active.
type CreateTemplateCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateTemplateCommandHandler(uowFactory CatalogUoWFactory) CreateTemplateCommandHandler {
	return CreateTemplateCommandHandler{uowFactory: uowFactory}
}

func (h CreateTemplateCommandHandler) Handle(ctx context.Context, command CreateTemplateCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	tpl, err := catalog.NewTemplate(command.TemplateID(), command.Spec())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partRepo := uow.PartRepository()
	for _, tp := range tpl.Parts() {
		part, err := partRepo.Get(ctx, tp.PartID)
		if err != nil {
			return err
		}
		if err = part.EnsureActive(); err != nil {
			return err
		}
	}

	if err = uow.TemplateRepository().Add(ctx, tpl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SetActiveCommandHandler flips the active flag of a color, part or template.
// Setting the flag to its current value succeeds without change.
type SetActiveCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSetActiveCommandHandler(uowFactory CatalogUoWFactory) SetActiveCommandHandler {
	return SetActiveCommandHandler{uowFactory: uowFactory}
}

func (h SetActiveCommandHandler) Handle(ctx context.Context, command SetActiveCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var err error
	switch command.Kind() {
	case ColorKind:
		err = setColorActive(ctx, uow, command)
	case PartKind:
		err = setPartActive(ctx, uow, command)
	case TemplateKind:
		err = setTemplateActive(ctx, uow, command)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func setColorActive(ctx context.Context, repos CatalogRepoFactory, command SetActiveCommand) error {
	repo := repos.ColorRepository()
	color, err := repo.Get(ctx, command.ID())
	if err != nil {
		return err
	}
	if command.Active() {
		color.Activate()
	} else {
		color.Deactivate()
	}
	return repo.Update(ctx, color)
}

func setPartActive(ctx context.Context, repos CatalogRepoFactory, command SetActiveCommand) error {
	repo := repos.PartRepository()
	part, err := repo.Get(ctx, command.ID())
	if err != nil {
		return err
	}
	if command.Active() {
		part.Activate()
	} else {
		part.Deactivate()
	}
	return repo.Update(ctx, part)
}

func setTemplateActive(ctx context.Context, repos CatalogRepoFactory, command SetActiveCommand) error {
	repo := repos.TemplateRepository()
	tpl, err := repo.Get(ctx, command.ID())
	if err != nil {
		return err
	}
	if command.Active() {
		tpl.Activate()
	} else {
		tpl.Deactivate()
	}
	return repo.Update(ctx, tpl)
}
