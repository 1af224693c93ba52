package cmd

import (
	"log/slog"

	httpadapter "cargo/internal/adapters/in/http"
	"cargo/internal/adapters/out/events"
	"cargo/internal/adapters/out/postgres"
	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/ports"
	"cargo/internal/jobs"
	"cargo/internal/pkg/jwtauth"

	"gorm.io/gorm"
)

type eventPublisher interface {
	ports.EventPublisher
	Close() error
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  eventPublisher
	tokens     *jwtauth.Manager
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. Without RABBITMQ_URL events only go to
// the log.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := jwtauth.NewManager(config.JWTSecret, config.TokenTTL)
	if err != nil {
		return nil, err
	}

	var publisher eventPublisher
	if config.RabbitMQURL != "" {
		publisher, err = events.DialRabbitMQ(config.RabbitMQURL, config.RabbitExchange, logger)
		if err != nil {
			return nil, err
		}
	} else {
		publisher = events.NewLogPublisher(logger)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) cargoUoWFactory() commands.CargoUoWFactory {
	return FuncCargoUoWFactory(func() commands.CargoUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f, commands.SystemClock)
}

func (c *CompositionRoot) CreateRefreshPrincipalCommandHandler() commands.RefreshPrincipalCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshPrincipalCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProfileCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCargoCommandHandler() commands.CreateCargoCommandHandler {
	return commands.NewCreateCargoCommandHandler(c.cargoUoWFactory(), commands.SystemClock)
}

func (c *CompositionRoot) CreateEditCargoCommandHandler() commands.EditCargoCommandHandler {
	return commands.NewEditCargoCommandHandler(c.cargoUoWFactory(), commands.SystemClock)
}

func (c *CompositionRoot) CreateRemoveCargoCommandHandler() commands.RemoveCargoCommandHandler {
	return commands.NewRemoveCargoCommandHandler(c.cargoUoWFactory())
}

func (c *CompositionRoot) CreateCancelCargoCommandHandler() commands.CancelCargoCommandHandler {
	return commands.NewCancelCargoCommandHandler(c.cargoUoWFactory(), c.publisher, c.logger, commands.SystemClock)
}

func (c *CompositionRoot) CreateTakeCargoCommandHandler() commands.TakeCargoCommandHandler {
	return commands.NewTakeCargoCommandHandler(
		c.cargoUoWFactory(),
		cargo.NewRandomCodeGenerator(),
		c.publisher,
		c.logger,
		commands.SystemClock,
	)
}

func (c *CompositionRoot) CreateDeliverCargoCommandHandler() commands.DeliverCargoCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverCargoCommandHandler(f, c.publisher, c.logger, commands.SystemClock)
}

func (c *CompositionRoot) CreateFailCargoCommandHandler() commands.FailCargoCommandHandler {
	return commands.NewFailCargoCommandHandler(c.cargoUoWFactory(), c.publisher, c.logger, commands.SystemClock)
}

func (c *CompositionRoot) CreateExpireStaleCargoCommandHandler() commands.ExpireStaleCargoCommandHandler {
	return commands.NewExpireStaleCargoCommandHandler(c.cargoUoWFactory(), c.publisher, c.logger, commands.SystemClock)
}

func (c *CompositionRoot) CreateListOwnCargoQueryHandler() queries.ListOwnCargoQueryHandler {
	return queries.NewListOwnCargoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAllCargoQueryHandler() queries.ListAllCargoQueryHandler {
	return queries.NewListAllCargoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expiration := jobs.NewCargoExpirationJob(
		c.CreateExpireStaleCargoCommandHandler(),
		c.config.ExpirySchedule,
		c.config.CargoExpiry,
		c.config.ExpiryBatch,
		c.config.StoreTimeout,
		c.logger,
	)
	return jobs.NewJobManager(expiration)
}

// CreateHTTPServer builds the HTTP adapter; store backs the health check.
func (c *CompositionRoot) CreateHTTPServer(store httpadapter.Pinger) (*httpadapter.Server, error) {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateUser:       c.CreateCreateUserCommandHandler(),
		RefreshPrincipal: c.CreateRefreshPrincipalCommandHandler(),
		UpdateProfile:    c.CreateUpdateProfileCommandHandler(),
		CreateCargo:      c.CreateCreateCargoCommandHandler(),
		EditCargo:        c.CreateEditCargoCommandHandler(),
		RemoveCargo:      c.CreateRemoveCargoCommandHandler(),
		CancelCargo:      c.CreateCancelCargoCommandHandler(),
		TakeCargo:        c.CreateTakeCargoCommandHandler(),
		DeliverCargo:     c.CreateDeliverCargoCommandHandler(),
		FailCargo:        c.CreateFailCargoCommandHandler(),
		ListOwnCargo:     c.CreateListOwnCargoQueryHandler(),
		ListAllCargo:     c.CreateListAllCargoQueryHandler(),
	}, c.tokens, store, c.logger)
}

type FuncCargoUoWFactory func() commands.CargoUoW

func (f FuncCargoUoWFactory) Create() commands.CargoUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
