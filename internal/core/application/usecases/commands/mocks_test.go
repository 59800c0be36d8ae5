package commands_test

import (
	"context"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*item.Item)
	return it, args.Error(1)
}

func (m *MockItemRepository) GetByProduct(ctx context.Context, productID kernel.UUID) ([]*item.Item, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]*item.Item)
	return items, args.Error(1)
}

func (m *MockItemRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*item.Item, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]*item.Item)
	return items, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockItemUoW struct{ MockTx }

func (m *MockItemUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	args := m.Called()
	return args.Get(0).(commands.ItemUoW)
}

type MockOrderUoW struct{ MockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}
