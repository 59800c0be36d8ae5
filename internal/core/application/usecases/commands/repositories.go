// Package commands contains the operations that change production state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, apply domain rules, write, commit. A handler never
// retries; conflicts surface to the caller as errs.ConcurrentModificationError.
package commands

import (
	"context"

	"printflow/internal/core/ports"
)

// Unit of Work interfaces narrow the store to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// CatalogRepoFactory provides access to colors, parts and templates within a
	// transaction.
	CatalogRepoFactory interface {
		ColorRepository() ports.ColorRepository
		PartRepository() ports.PartRepository
		TemplateRepository() ports.TemplateRepository
	}

	// ItemUoW is used by commands that change items only.
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	// ItemUoWFactory creates new item unit of work instances.
	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// OrderUoW is used by commands that change order headers only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW is used by reference data commands.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW spans every repository. Used by commands that touch orders and items
	// together, such as order creation and shipping.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   items, err := uow.ItemRepository().GetByOrder(ctx, orderID)
	//   // ... ship
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ItemRepoFactory
		CatalogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

