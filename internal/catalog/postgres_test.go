package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-prop/intel-cli/internal/model"
)

func TestPostgresLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ikoyi := testZone("Ikoyi", 20, 95, 98)
	ajah := testZone("Ajah", 85, 55, 45)
	ikoyiJSON, _ := json.Marshal(ikoyi)
	ajahJSON, _ := json.Marshal(ajah)

	mock.ExpectQuery("SELECT record FROM zones ORDER BY position").
		WillReturnRows(pgxmock.NewRows([]string{"record"}).
			AddRow(ikoyiJSON).
			AddRow(ajahJSON))

	src := NewPostgres(mock)
	zones, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Ikoyi", zones[0].Name)
	assert.Equal(t, "Ajah", zones[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadCorruptRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT record FROM zones").
		WillReturnRows(pgxmock.NewRows([]string{"record"}).AddRow([]byte("{not json")))

	src := NewPostgres(mock)
	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrData))
}

func TestPostgresImport(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("TRUNCATE zones").WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"zones"},
		[]string{"position", "name", "state", "lga", "lat", "lng", "record"}).
		WillReturnResult(2)

	src := NewPostgres(mock)
	err = src.Import(context.Background(), []model.Zone{
		testZone("Ikoyi", 20, 95, 98),
		testZone("Ajah", 85, 55, 45),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS zones").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	src := NewPostgres(mock)
	assert.NoError(t, src.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
