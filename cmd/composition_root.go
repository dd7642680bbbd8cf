package cmd

import (
	"log"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/security"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hasher     ports.PasswordHasher
	signer     ports.TokenSigner
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	signer, err := security.NewJWTSigner(config.JWTSecret, config.AccessTokenTTL, config.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("invalid token signer configuration: %v", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hasher:     security.NewBcryptPasswordHasher(config.BcryptCost),
		signer:     signer,
	}
}

func (c *CompositionRoot) TokenSigner() ports.TokenSigner {
	return c.signer
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	var f commands.AuthUoWFactory = FuncAuthUoWFactory(func() commands.AuthUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLoginCommandHandler(f, c.hasher, c.signer)
}

func (c *CompositionRoot) CreateRefreshTokenCommandHandler() commands.RefreshTokenCommandHandler {
	var f commands.AuthUoWFactory = FuncAuthUoWFactory(func() commands.AuthUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshTokenCommandHandler(f, c.signer)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	var f commands.TokenUoWFactory = FuncTokenUoWFactory(func() commands.TokenUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLogoutCommandHandler(f, c.signer)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	return commands.NewDeleteProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmProcessingCommandHandler() commands.ConfirmProcessingCommandHandler {
	return commands.NewConfirmProcessingCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	return commands.NewPickupOrderCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateChangeDeliveryCommandHandler() commands.ChangeDeliveryCommandHandler {
	return commands.NewChangeDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreatePurgeExpiredTokensCommandHandler() commands.PurgeExpiredTokensCommandHandler {
	var f commands.TokenUoWFactory = FuncTokenUoWFactory(func() commands.TokenUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeExpiredTokensCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAccountQueryHandler() queries.GetAccountQueryHandler {
	return queries.NewGetAccountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductsQueryHandler() queries.GetProductsQueryHandler {
	return queries.NewGetProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesQueryHandler() queries.GetSalesQueryHandler {
	return queries.NewGetSalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSaleQueryHandler() queries.GetSaleQueryHandler {
	return queries.NewGetSaleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncAuthUoWFactory func() commands.AuthUoW

func (f FuncAuthUoWFactory) Create() commands.AuthUoW {
	return f()
}

type FuncTokenUoWFactory func() commands.TokenUoW

func (f FuncTokenUoWFactory) Create() commands.TokenUoW {
	return f()
}
