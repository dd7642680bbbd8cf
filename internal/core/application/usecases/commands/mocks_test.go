package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/auth"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) DebitBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) CreditBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, item *cart.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, item *cart.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*cart.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Item), args.Error(1)
}

func (m *MockCartRepository) GetByUserAndProduct(ctx context.Context, userID, productID kernel.UUID) (*cart.Item, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserAndProducts(ctx context.Context, userID kernel.UUID, productIDs []kernel.UUID) error {
	args := m.Called(ctx, userID, productIDs)
	return args.Error(0)
}

type MockTokenRepository struct{ mock.Mock }

func (m *MockTokenRepository) Add(ctx context.Context, token auth.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Get(ctx context.Context, id kernel.UUID) (auth.RefreshToken, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// txMock carries the Begin/Commit/Rollback trio shared by every UoW mock.
type txMock struct{ mock.Mock }

func (m *txMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPlacementUoW struct{ txMock }

func (m *MockPlacementUoW) BeginSerializable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlacementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPlacementUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockPlacementUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockPlacementUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

type MockDeliveryUoW struct{ txMock }

func (m *MockDeliveryUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeliveryUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockProductUoW struct{ txMock }

func (m *MockProductUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockCartUoW struct{ txMock }

func (m *MockCartUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockCartUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockUserUoW struct{ txMock }

func (m *MockUserUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockAuthUoW struct{ txMock }

func (m *MockAuthUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockAuthUoW) TokenRepository() ports.TokenRepository {
	args := m.Called()
	return args.Get(0).(ports.TokenRepository)
}

type MockAuthUoWFactory struct{ mock.Mock }

func (m *MockAuthUoWFactory) Create() commands.AuthUoW {
	args := m.Called()
	return args.Get(0).(commands.AuthUoW)
}

type MockTokenUoW struct{ txMock }

func (m *MockTokenUoW) TokenRepository() ports.TokenRepository {
	args := m.Called()
	return args.Get(0).(ports.TokenRepository)
}

type MockTokenUoWFactory struct{ mock.Mock }

func (m *MockTokenUoWFactory) Create() commands.TokenUoW {
	args := m.Called()
	return args.Get(0).(commands.TokenUoW)
}

// stubHasher is a deterministic PasswordHasher for handler tests.
type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (stubHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return assertionMismatch
	}
	return nil
}

var assertionMismatch = errorString("hash mismatch")

type errorString string

func (e errorString) Error() string { return string(e) }

// stubSigner issues predictable tokens so tests can assert rotation without
// real signatures.
type stubSigner struct {
	parsedUserID kernel.UUID
	parsedJTI    kernel.UUID
	parseErr     error
}

func (s *stubSigner) SignAccess(userID kernel.UUID, role user.Role) (string, time.Time, error) {
	return "access:" + userID.String(), time.Now().Add(15 * time.Minute), nil
}

func (s *stubSigner) SignRefresh(userID kernel.UUID, jti kernel.UUID) (string, time.Time, error) {
	return "refresh:" + jti.String(), time.Now().Add(24 * time.Hour), nil
}

func (s *stubSigner) ParseAccess(token string) (ports.TokenClaims, error) {
	return ports.TokenClaims{}, s.parseErr
}

func (s *stubSigner) ParseRefresh(token string) (kernel.UUID, kernel.UUID, error) {
	if s.parseErr != nil {
		return kernel.UUID{}, kernel.UUID{}, s.parseErr
	}
	return s.parsedUserID, s.parsedJTI, nil
}
