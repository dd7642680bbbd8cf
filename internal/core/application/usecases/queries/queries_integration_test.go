package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite exercises the read-side handlers against real
// PostgreSQL, seeding state through the write-side repositories.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&userrepo.UserDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&cartrepo.CartItemDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, products, users, cart_items").Error
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) quantity(v int64) kernel.Quantity {
	q, err := kernel.QuantityFromInt64(v)
	suite.Require().NoError(err)
	return q
}

func (suite *QueriesIntegrationTestSuite) storedUser(role user.Role) *user.User {
	id := kernel.NewUUID()
	now := time.Now().UTC()
	u, err := user.RestoreUser(
		id,
		"User "+id.String()[:8],
		id.String()[:8]+"@example.com",
		"$2a$10$abcdefghijklmnopqrstuv",
		role,
		decimal.NewFromInt(1000),
		now, now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().UserRepository().Add(context.Background(), u))
	return u
}

func (suite *QueriesIntegrationTestSuite) storedProduct(merchantID kernel.UUID, name string, price int64) *product.Product {
	p, err := product.NewProduct(
		kernel.NewUUID(), merchantID,
		name, "description of "+name,
		suite.quantity(10),
		decimal.NewFromInt(price),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().ProductRepository().Add(context.Background(), p))
	return p
}

// storedOrder seeds an order and walks it to the requested current status
// through the aggregate's own transitions.
func (suite *QueriesIntegrationTestSuite) storedOrder(
	buyer, merchant *user.User,
	productID kernel.UUID,
	courier *user.User,
	target order.Status,
) *order.Order {
	item, err := order.NewLineItem(productID, suite.quantity(2))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), buyer.ID(), merchant.ID(), decimal.NewFromInt(500), []order.LineItem{item})
	suite.Require().NoError(err)

	repo := suite.factory.Create().OrderRepository()
	suite.Require().NoError(repo.Add(context.Background(), o))

	if target == order.ProcessingInMerchant {
		return o
	}

	suite.Require().NoError(o.ConfirmProcessing(merchant.ID()))
	if target != order.WaitingForCourier {
		suite.Require().NotNil(courier, "statuses past WaitingForCourier need a courier")
		suite.Require().NoError(o.Pickup(courier.Actor()))
		if target != order.PickedUpByCourier {
			_, err = o.ChangeDelivery(courier.Actor(), target)
			suite.Require().NoError(err)
		}
	}

	suite.Require().NoError(repo.Update(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrders_BuyerScope() {
	buyer := suite.storedUser(user.RoleCustomer)
	other := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)

	mine := suite.storedOrder(buyer, merchant, p.ID(), nil, order.ProcessingInMerchant)
	suite.storedOrder(other, merchant, p.ID(), nil, order.ProcessingInMerchant)

	query, err := queries.NewGetOrdersQuery(buyer.ID())
	suite.Require().NoError(err)

	views, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(views, 1, "only the caller's purchases are listed")
	suite.Equal(mine.ID().String(), views[0].ID)
	suite.Equal(buyer.ID().String(), views[0].UserID)
	suite.Require().Len(views[0].Products, 1, "buyer views carry line items")
	suite.Equal(p.ID().String(), views[0].Products[0].ID)
	suite.Equal("2", views[0].Products[0].Quantity)
	suite.Require().Len(views[0].Status, 1)
	suite.Equal(string(order.ProcessingInMerchant), views[0].Status[0].Type)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_OtherBuyerGetsForbidden() {
	buyer := suite.storedUser(user.RoleCustomer)
	other := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)
	o := suite.storedOrder(buyer, merchant, p.ID(), nil, order.ProcessingInMerchant)

	handler := queries.NewGetOrderQueryHandler(suite.db)

	query, err := queries.NewGetOrderQuery(o.ID(), buyer.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(o.ID().String(), view.ID)

	query, err = queries.NewGetOrderQuery(o.ID(), other.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)

	query, err = queries.NewGetOrderQuery(kernel.NewUUID(), buyer.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrForbidden, "absent orders are indistinguishable from foreign ones")
}

func (suite *QueriesIntegrationTestSuite) TestGetSales_MerchantScope() {
	buyer := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	otherMerchant := suite.storedUser(user.RoleCustomer)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)
	o := suite.storedOrder(buyer, merchant, p.ID(), nil, order.ProcessingInMerchant)

	query, err := queries.NewGetSalesQuery(merchant.ID())
	suite.Require().NoError(err)
	views, err := queries.NewGetSalesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(o.ID().String(), views[0].ID)

	saleQuery, err := queries.NewGetSaleQuery(o.ID(), otherMerchant.ID())
	suite.Require().NoError(err)
	_, err = queries.NewGetSaleQueryHandler(suite.db).Handle(context.Background(), saleQuery)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetDeliveries_CourierBoard() {
	buyer := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	courier := suite.storedUser(user.RoleCourier)
	otherCourier := suite.storedUser(user.RoleCourier)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)

	unclaimed := suite.storedOrder(buyer, merchant, p.ID(), nil, order.WaitingForCourier)
	carried := suite.storedOrder(buyer, merchant, p.ID(), courier, order.PickedUpByCourier)
	suite.storedOrder(buyer, merchant, p.ID(), otherCourier, order.PickedUpByCourier)
	suite.storedOrder(buyer, merchant, p.ID(), nil, order.ProcessingInMerchant)

	query, err := queries.NewGetDeliveriesQuery(courier.Actor())
	suite.Require().NoError(err)
	views, err := queries.NewGetDeliveriesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(views, 2, "unclaimed plus own deliveries")
	ids := []string{views[0].ID, views[1].ID}
	suite.Contains(ids, unclaimed.ID().String())
	suite.Contains(ids, carried.ID().String())
	suite.Empty(views[0].Products, "delivery views omit line items")
	suite.Empty(views[1].Products, "delivery views omit line items")
}

func (suite *QueriesIntegrationTestSuite) TestGetDeliveries_CustomerForbidden() {
	customer := suite.storedUser(user.RoleCustomer)

	query, err := queries.NewGetDeliveriesQuery(customer.Actor())
	suite.Require().NoError(err)
	_, err = queries.NewGetDeliveriesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetDelivery_Visibility() {
	buyer := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	courier := suite.storedUser(user.RoleCourier)
	otherCourier := suite.storedUser(user.RoleCourier)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)

	unclaimed := suite.storedOrder(buyer, merchant, p.ID(), nil, order.WaitingForCourier)
	carried := suite.storedOrder(buyer, merchant, p.ID(), otherCourier, order.PickedUpByCourier)

	handler := queries.NewGetDeliveryQueryHandler(suite.db)

	query, err := queries.NewGetDeliveryQuery(unclaimed.ID(), courier.Actor())
	suite.Require().NoError(err)
	view, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(unclaimed.ID().String(), view.ID)
	suite.Empty(view.Products)

	query, err = queries.NewGetDeliveryQuery(carried.ID(), courier.Actor())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrForbidden, "another courier's delivery is invisible")

	query, err = queries.NewGetDeliveryQuery(kernel.NewUUID(), courier.Actor())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetProducts_ExcludesSoftDeleted() {
	merchant := suite.storedUser(user.RoleCustomer)
	live := suite.storedProduct(merchant.ID(), "Mug", 250)
	deleted := suite.storedProduct(merchant.ID(), "Bowl", 300)
	suite.Require().NoError(suite.factory.Create().ProductRepository().Delete(context.Background(), deleted.ID()))

	views, err := queries.NewGetProductsQueryHandler(suite.db).Handle(context.Background(), queries.NewGetProductsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(views, 1)
	suite.Equal(live.ID().String(), views[0].ID)
	suite.Equal("Mug", views[0].Name)
	suite.Equal("10", views[0].Stock)

	query, err := queries.NewGetProductQuery(deleted.ID())
	suite.Require().NoError(err)
	_, err = queries.NewGetProductQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetCart_JoinsLiveProducts() {
	buyer := suite.storedUser(user.RoleCustomer)
	merchant := suite.storedUser(user.RoleCustomer)
	p := suite.storedProduct(merchant.ID(), "Mug", 250)
	gone := suite.storedProduct(merchant.ID(), "Bowl", 300)

	cartRepo := suite.factory.Create().CartRepository()
	item, err := cart.NewItem(kernel.NewUUID(), buyer.ID(), p.ID(), merchant.ID(), suite.quantity(3))
	suite.Require().NoError(err)
	suite.Require().NoError(cartRepo.Add(context.Background(), item))

	orphan, err := cart.NewItem(kernel.NewUUID(), buyer.ID(), gone.ID(), merchant.ID(), suite.quantity(1))
	suite.Require().NoError(err)
	suite.Require().NoError(cartRepo.Add(context.Background(), orphan))
	suite.Require().NoError(suite.factory.Create().ProductRepository().Delete(context.Background(), gone.ID()))

	query, err := queries.NewGetCartQuery(buyer.ID())
	suite.Require().NoError(err)
	views, err := queries.NewGetCartQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(views, 2)
	byProduct := map[string]queries.CartItemView{}
	for _, v := range views {
		byProduct[v.ProductID] = v
	}

	mug := byProduct[p.ID().String()]
	suite.Equal("Mug", mug.ProductName)
	suite.Equal("250", mug.UnitPrice)
	suite.Equal("3", mug.Quantity)

	bowl := byProduct[gone.ID().String()]
	suite.Empty(bowl.ProductName, "entries for deleted products lose their join data")
	suite.Empty(bowl.UnitPrice)
}

func (suite *QueriesIntegrationTestSuite) TestGetAccount_OmitsSecrets() {
	account := suite.storedUser(user.RoleCustomer)

	query, err := queries.NewGetAccountQuery(account.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetAccountQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(account.ID().String(), view.ID)
	suite.Equal(account.Email(), view.Email)
	suite.Equal(string(user.RoleCustomer), view.Role)
	suite.Equal("1000", view.Balance)
}

// TestQueriesIntegration runs the integration test suite.
// Skips execution in short mode to avoid Docker dependency in unit test runs.
func TestQueriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(QueriesIntegrationTestSuite))
}
