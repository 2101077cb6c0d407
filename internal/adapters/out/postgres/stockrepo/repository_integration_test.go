package stockrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/stockrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormStockLedgerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	ledger    *stockrepo.GormStockLedger
	movements *stockrepo.GormMovementRepository
}

func (s *GormStockLedgerTestSuite) SetupSuite() {
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
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(&stockrepo.VariantStockDTO{}, &stockrepo.MovementDTO{})
	s.Require().NoError(err)

	s.ledger = stockrepo.NewGormStockLedger(db)
	s.movements = stockrepo.NewGormMovementRepository(db)
}

func (s *GormStockLedgerTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *GormStockLedgerTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE variant_stocks, stock_movements").Error
	s.Require().NoError(err)
}

func (s *GormStockLedgerTestSuite) seed(variantID kernel.UUID, current, reserved int) {
	err := s.db.Create(&stockrepo.VariantStockDTO{
		VariantID: variantID.Bytes(),
		Current:   current,
		Reserved:  reserved,
	}).Error
	s.Require().NoError(err)
}

func (s *GormStockLedgerTestSuite) level(variantID kernel.UUID) stock.Level {
	levels, err := s.ledger.ReadAvailable(context.Background(), []kernel.UUID{variantID})
	s.Require().NoError(err)
	return levels[variantID]
}

func (s *GormStockLedgerTestSuite) TestReadAvailable_SkipsUntrackedVariants() {
	tracked := kernel.NewUUID()
	s.seed(tracked, 7, 2)

	levels, err := s.ledger.ReadAvailable(context.Background(),
		[]kernel.UUID{tracked, kernel.NewUUID()})
	s.Require().NoError(err)
	s.Require().Len(levels, 1)
	s.Equal(7, levels[tracked].Current)
	s.Equal(2, levels[tracked].Reserved)
	s.Equal(5, levels[tracked].Available())
}

func (s *GormStockLedgerTestSuite) TestReserveThenDeduct_ConsumesReservation() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	s.seed(variantID, 10, 0)
	lines := []stock.BatchLine{{VariantID: variantID, Quantity: 4}}

	reserveResult, err := s.ledger.ReserveBatch(ctx, orderID, lines)
	s.Require().NoError(err)
	s.Require().Len(reserveResult.Lines, 1)
	s.Equal(0, reserveResult.Lines[0].Before)
	s.Equal(4, reserveResult.Lines[0].After)
	s.Equal(stock.Level{Current: 10, Reserved: 4}, s.level(variantID))

	deductResult, err := s.ledger.DeductBatch(ctx, orderID, lines)
	s.Require().NoError(err)
	s.Require().Len(deductResult.Lines, 1)
	s.Equal(10, deductResult.Lines[0].Before)
	s.Equal(6, deductResult.Lines[0].After)
	s.Equal(stock.Level{Current: 6, Reserved: 0}, s.level(variantID))
}

func (s *GormStockLedgerTestSuite) TestReserveDeductRelease_NetsSingleDebit() {
	// Full order lifecycle against one variant: reserve on conversion,
	// deduct on packing, release on a late cancellation. The release must
	// not credit stock back because the reservation was already consumed.
	ctx := context.Background()
	variantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	s.seed(variantID, 10, 0)
	lines := []stock.BatchLine{{VariantID: variantID, Quantity: 4}}

	_, err := s.ledger.ReserveBatch(ctx, orderID, lines)
	s.Require().NoError(err)
	_, err = s.ledger.DeductBatch(ctx, orderID, lines)
	s.Require().NoError(err)

	releaseResult, err := s.ledger.ReleaseBatch(ctx, orderID, lines)
	s.Require().NoError(err)
	s.Equal(0, releaseResult.Lines[0].Before)
	s.Equal(0, releaseResult.Lines[0].After)
	s.Equal(stock.Level{Current: 6, Reserved: 0}, s.level(variantID))
}

func (s *GormStockLedgerTestSuite) TestDeduct_FloorsAtZero() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	s.seed(variantID, 2, 0)

	result, err := s.ledger.DeductBatch(ctx, kernel.NewUUID(),
		[]stock.BatchLine{{VariantID: variantID, Quantity: 5}})
	s.Require().NoError(err)
	s.Equal(2, result.Lines[0].Before)
	s.Equal(0, result.Lines[0].After)
	s.Equal(stock.Level{Current: 0, Reserved: 0}, s.level(variantID))
}

func (s *GormStockLedgerTestSuite) TestRelease_FloorsAtZero() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	s.seed(variantID, 5, 1)

	result, err := s.ledger.ReleaseBatch(ctx, kernel.NewUUID(),
		[]stock.BatchLine{{VariantID: variantID, Quantity: 3}})
	s.Require().NoError(err)
	s.Equal(1, result.Lines[0].Before)
	s.Equal(0, result.Lines[0].After)
	s.Equal(stock.Level{Current: 5, Reserved: 0}, s.level(variantID))
}

func (s *GormStockLedgerTestSuite) TestRestore_CreditsCurrentStock() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	s.seed(variantID, 1, 0)

	result, err := s.ledger.RestoreBatch(ctx, kernel.NewUUID(),
		[]stock.BatchLine{{VariantID: variantID, Quantity: 4}})
	s.Require().NoError(err)
	s.Equal(1, result.Lines[0].Before)
	s.Equal(5, result.Lines[0].After)
	s.Equal(stock.Level{Current: 5, Reserved: 0}, s.level(variantID))
}

func (s *GormStockLedgerTestSuite) TestMutate_CreatesMissingRowAtZero() {
	ctx := context.Background()
	variantID := kernel.NewUUID()

	result, err := s.ledger.RestoreBatch(ctx, kernel.NewUUID(),
		[]stock.BatchLine{{VariantID: variantID, Quantity: 2}})
	s.Require().NoError(err)
	s.Equal(0, result.Lines[0].Before)
	s.Equal(2, result.Lines[0].After)
}

func (s *GormStockLedgerTestSuite) TestMovements_AppendAndGetByOrder() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	m, err := stock.NewMovement(variantID, -3, 10, 7, orderID, stock.Sale, actorID)
	s.Require().NoError(err)
	s.Require().NoError(s.movements.Append(ctx, []stock.Movement{m}))

	got, err := s.movements.GetByOrder(ctx, orderID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(-3, got[0].Delta())
	s.Equal(stock.Sale, got[0].Kind())
	s.True(variantID.IsEqual(got[0].VariantID()))

	other, err := s.movements.GetByOrder(ctx, kernel.NewUUID())
	s.Require().NoError(err)
	s.Empty(other)
}

func TestGormStockLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(GormStockLedgerTestSuite))
}
