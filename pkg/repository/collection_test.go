package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"gorm.io/gorm"

	"beerledger.io/BeerLedger/pkg/model"
	"beerledger.io/BeerLedger/pkg/repository"
)

type CollectionTestSuite struct {
	RepositorySuite
}

func TestCollectionTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionTestSuite))
}

func (suite *CollectionTestSuite) TestGetCollectionForUser_JoinsBeer() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "collection_entries" LEFT JOIN "beers" "Beer" ON "collection_entries"\."beer_id" = "Beer"\."id" WHERE collection_entries\.user_id = \$1$`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_id", "rating", "Beer__id", "Beer__name"}).
			AddRow(uint(7), int64(42), "1336aa", 4, "1336aa", "Hop Circus").
			AddRow(uint(8), int64(42), "c0ffee", nil, "c0ffee", "Mystery Cask"))

	entries, err := suite.repository.GetCollectionForUser(context.Background(), 42)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(uint(7), entries[0].ID)
	suite.Equal("Hop Circus", entries[0].Beer.Name)
	suite.Nil(entries[1].Rating)
}

func (suite *CollectionTestSuite) TestGetCollectionForUser_LogsQueryError() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrInvalidDB)

	entries, err := suite.repository.GetCollectionForUser(context.Background(), 42)
	suite.Require().Error(err)
	suite.Nil(entries)
	suite.GreaterOrEqual(suite.observedLogs.Len(), 1)

	errorLog := suite.observedLogs.All()[suite.observedLogs.Len()-1]
	suite.Equal("error getting collection for user", errorLog.Message)
	suite.Equal(int64(42), errorLog.ContextMap()["user_id"])
}

func (suite *CollectionTestSuite) TestAddCollectionEntry_AddsEntry() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "collection_entries" (.+) ON CONFLICT \("user_id","beer_id"\) DO NOTHING RETURNING "id"$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(7)))
	suite.mock.ExpectCommit()

	entry, err := suite.repository.AddCollectionEntry(context.Background(), model.CollectionEntry{
		UserID: 42,
		BeerID: "1336aa",
		Rating: pointy.Int(4),
	})
	suite.Require().NoError(err)
	suite.Equal(uint(7), entry.ID)
}

func (suite *CollectionTestSuite) TestAddCollectionEntry_ReturnsDuplicateOnConflict() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "collection_entries" (.+) ON CONFLICT \("user_id","beer_id"\) DO NOTHING RETURNING "id"$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectCommit()

	entry, err := suite.repository.AddCollectionEntry(context.Background(), model.CollectionEntry{
		UserID: 42,
		BeerID: "1336aa",
	})
	suite.Require().ErrorIs(err, repository.ErrDuplicateEntry)
	suite.Nil(entry)
}

func (suite *CollectionTestSuite) TestUpdateCollectionEntry_UpdatesEntry() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "collection_entries" SET "notes"=\$1,"rating"=\$2,"updated_at"=\$3 WHERE id = \$4$`).
		WithArgs("cellar temperature suits it", 5, sqlmock.AnyArg(), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectQuery(`^SELECT \* FROM "collection_entries" WHERE id = \$1 ORDER BY "collection_entries"\."id" LIMIT \$2$`).
		WithArgs(uint(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "beer_id", "rating", "notes"}).
			AddRow(uint(7), int64(42), "1336aa", 5, "cellar temperature suits it"))

	update := model.CollectionUpdate{
		Rating: pointy.Int(5),
		Notes:  pointy.String("cellar temperature suits it"),
	}

	entry, err := suite.repository.UpdateCollectionEntry(context.Background(), 7, update)
	suite.Require().NoError(err)
	suite.Equal(5, *entry.Rating)
	suite.Equal("cellar temperature suits it", *entry.Notes)
}

func (suite *CollectionTestSuite) TestUpdateCollectionEntry_ReturnsErrorWhenNoRecords() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "collection_entries" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	entry, err := suite.repository.UpdateCollectionEntry(context.Background(), 99, model.CollectionUpdate{Rating: pointy.Int(1)})
	suite.Require().ErrorIs(err, repository.ErrEntryNotFound)
	suite.Nil(entry)
}

func (suite *CollectionTestSuite) TestDeleteCollectionEntry_ReturnsErrorWhenNoRecords() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^DELETE FROM "collection_entries" WHERE id = \$1$`).
		WithArgs(uint(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	err := suite.repository.DeleteCollectionEntry(context.Background(), 99)
	suite.Require().ErrorIs(err, repository.ErrEntryNotFound)
}

func (suite *CollectionTestSuite) TestClearCollections_DeletesAllEntries() {
	suite.mock.ExpectExec(`^DELETE FROM collection_entries$`).WillReturnResult(sqlmock.NewResult(0, 37))

	err := suite.repository.ClearCollections(context.Background())
	suite.Require().NoError(err)
}
