package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/postgres"
)

var itemCols = []string{"id", "name", "category", "quantity", "unit_price", "reorder_threshold", "created_at", "updated_at"}

type ItemRepoSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *postgres.ItemRepo
	ctx  context.Context
	at   time.Time
}

func (s *ItemRepoSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.repo = postgres.NewItemRepository(mock)
	s.ctx = context.Background()
	s.at = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *ItemRepoSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestItemRepoSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoSuite))
}

func (s *ItemRepoSuite) row(id, name string, qty int64, price string) *pgxmock.Rows {
	return pgxmock.NewRows(itemCols).
		AddRow(id, name, "General", qty, decimal.RequireFromString(price), int64(5), s.at, s.at)
}

func (s *ItemRepoSuite) TestCreate() {
	it := &entity.Item{ID: "i-1", Name: "Candles", Category: "General", Quantity: 4, UnitPrice: decimal.NewFromInt(10), ReorderThreshold: 5}
	s.mock.ExpectExec(`INSERT INTO inventory_items`).
		WithArgs("i-1", "Candles", "General", int64(4), it.UnitPrice, int64(5), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.Require().NoError(s.repo.Create(s.ctx, it))
	s.False(it.CreatedAt.IsZero())
}

func (s *ItemRepoSuite) TestCreate_IDDuplicado() {
	it := &entity.Item{ID: "i-1", Name: "Candles"}
	s.mock.ExpectExec(`INSERT INTO inventory_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	s.ErrorIs(s.repo.Create(s.ctx, it), domain.ErrInvalidInput)
}

func (s *ItemRepoSuite) TestGetByID_NoExiste() {
	s.mock.ExpectQuery(`FROM inventory_items WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(itemCols))

	got, err := s.repo.GetByID(s.ctx, "missing")
	s.NoError(err)
	s.Nil(got)
}

func (s *ItemRepoSuite) TestGetForUpdate_Bloquea() {
	s.mock.ExpectQuery(`WHERE id = \$1 FOR UPDATE`).
		WithArgs("i-1").
		WillReturnRows(s.row("i-1", "Candles", 4, "10"))

	got, err := s.repo.GetForUpdate(s.ctx, "i-1")
	s.Require().NoError(err)
	s.Equal("Candles", got.Name)
	s.True(got.UnitPrice.Equal(decimal.NewFromInt(10)))
}

func (s *ItemRepoSuite) TestFindByExactName_ToleraPlural() {
	s.mock.ExpectQuery(`lower\(name\) = lower\(\$1\) OR lower\(name\) = lower\(\$1\) \|\| 's' OR lower\(name\) \|\| 's' = lower\(\$1\)`).
		WithArgs("candle").
		WillReturnRows(s.row("i-1", "Candles", 4, "10"))

	got, err := s.repo.FindByExactName(s.ctx, "candle")
	s.Require().NoError(err)
	s.Equal("i-1", got.ID)
}

func (s *ItemRepoSuite) TestFindByNameFragment() {
	s.mock.ExpectQuery(`strpos\(lower\(name\), lower\(\$1\)\) > 0 ORDER BY created_at, id LIMIT 1`).
		WithArgs("cand").
		WillReturnRows(s.row("i-1", "Candles", 4, "10"))

	got, err := s.repo.FindByNameFragment(s.ctx, "cand")
	s.Require().NoError(err)
	s.Equal("Candles", got.Name)
}

func (s *ItemRepoSuite) TestList_OrdenDeCreacion() {
	rows := pgxmock.NewRows(itemCols).
		AddRow("a", "Apple", "Grocery", int64(3), decimal.NewFromInt(10), int64(10), s.at, s.at).
		AddRow("b", "Chair", "Furniture", int64(1), decimal.NewFromInt(50), int64(3), s.at, s.at)
	s.mock.ExpectQuery(`FROM inventory_items ORDER BY created_at, id`).WillReturnRows(rows)

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("Apple", items[0].Name)
	s.Equal("Chair", items[1].Name)
}

func (s *ItemRepoSuite) TestListBelowReorderThreshold() {
	s.mock.ExpectQuery(`WHERE quantity < reorder_threshold`).
		WillReturnRows(s.row("i-1", "Candles", 4, "10"))

	items, err := s.repo.ListBelowReorderThreshold(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *ItemRepoSuite) TestListByCategory_ErrorDeConsulta() {
	s.mock.ExpectQuery(`strpos\(lower\(category\)`).
		WithArgs("groc").
		WillReturnError(errors.New("connection reset"))

	_, err := s.repo.ListByCategory(s.ctx, "groc")
	s.ErrorContains(err, "list items by category")
}

func (s *ItemRepoSuite) TestUpdate_NoExiste() {
	it := &entity.Item{ID: "gone", Name: "X"}
	s.mock.ExpectExec(`UPDATE inventory_items SET`).
		WithArgs("gone", "X", "", int64(0), pgxmock.AnyArg(), int64(0), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	s.ErrorIs(s.repo.Update(s.ctx, it), domain.ErrNotFound)
}

func (s *ItemRepoSuite) TestUpdate_ValorFueraDeRango() {
	it := &entity.Item{ID: "i-1", Name: "Candles", Quantity: -1}
	s.mock.ExpectExec(`UPDATE inventory_items SET`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23514"})
	s.mock.ExpectExec(`UPDATE inventory_items SET`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "22003"})

	s.ErrorIs(s.repo.Update(s.ctx, it), domain.ErrInvalidInput)
	s.ErrorIs(s.repo.Update(s.ctx, it), domain.ErrInvalidInput)
}

func (s *ItemRepoSuite) TestDelete() {
	s.mock.ExpectExec(`DELETE FROM inventory_items WHERE id = \$1`).
		WithArgs("i-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	s.mock.ExpectExec(`DELETE FROM inventory_items WHERE id = \$1`).
		WithArgs("i-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	s.NoError(s.repo.Delete(s.ctx, "i-1"))
	s.ErrorIs(s.repo.Delete(s.ctx, "i-1"), domain.ErrNotFound)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	ctx := context.Background()
	runner := postgres.NewTxRunner(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM inventory_items`).WithArgs("i-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()
	require.NoError(t, runner.Run(ctx, func(items repository.ItemRepository) error {
		return items.Delete(ctx, "i-1")
	}))

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	assert.ErrorIs(t, runner.Run(ctx, func(repository.ItemRepository) error { return boom }), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
