package cmd

import (
	"log/slog"
	"time"

	"orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/audit"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/stockrepo"
	"orderflow/internal/adapters/out/stockcache"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB

	uowFactory  postgres.GormUnitOfWorkFactory
	stockLedger ports.StockLedger
	movements   ports.MovementRepository
	auditSink   ports.AuditSink
	publisher   *kafka.StatusChangedPublisher

	validator services.TransitionValidator
	triggers  services.InventoryTriggerExecutor
	workflow  commands.TransitionWorkflow

	logger *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	zapLogger *zap.Logger,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	root.stockLedger = stockcache.NewReadThroughLedger(
		stockrepo.NewGormStockLedger(gormDB),
		redisClient,
	)
	root.movements = stockrepo.NewGormMovementRepository(gormDB)
	root.auditSink = audit.NewZapSink(zapLogger)
	root.publisher = kafka.NewStatusChangedPublisher(
		[]string{configs.KafkaHost},
		configs.KafkaOrderChangedTopic,
	)

	root.validator = services.NewTransitionValidator(root.stockLedger)
	root.triggers = services.NewInventoryTriggerExecutor(root.stockLedger, root.movements, logger)
	root.workflow = commands.NewTransitionWorkflow(
		root.orderUoWFactory(),
		root.validator,
		root.triggers,
		root.auditSink,
		root.publisher,
		logger,
	)

	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		c.stockLedger,
		c.triggers,
		c.auditSink,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateMarkOutForDeliveryCommandHandler() commands.MarkOutForDeliveryCommandHandler {
	return commands.NewMarkOutForDeliveryCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateHandoverToCourierCommandHandler() commands.HandoverToCourierCommandHandler {
	return commands.NewHandoverToCourierCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateMarkReturnedCommandHandler() commands.MarkReturnedCommandHandler {
	return commands.NewMarkReturnedCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateBulkUpdateStatusCommandHandler() commands.BulkUpdateStatusCommandHandler {
	return commands.NewBulkUpdateStatusCommandHandler(c.workflow, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockMovementsQueryHandler() queries.GetStockMovementsQueryHandler {
	return queries.NewGetStockMovementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateStatusCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateMarkOutForDeliveryCommandHandler(),
		c.CreateHandoverToCourierCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateMarkReturnedCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateBulkUpdateStatusCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetStockMovementsQueryHandler(),
	)
}

// CreateJobManager wires the background jobs. The sweep runs as a
// generated admin identity so its cancellations pass the role lock.
func (c *CompositionRoot) CreateJobManager(staleIntakeMaxAge time.Duration) (*jobs.JobManager, error) {
	sweeper, err := actor.NewContext(kernel.NewUUID(), actor.Admin)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		c.orderUoWFactory(),
		c.CreateBulkUpdateStatusCommandHandler(),
		c.stockLedger,
		sweeper,
		staleIntakeMaxAge,
		c.logger,
	), nil
}

// Close releases outbound resources held by the root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
