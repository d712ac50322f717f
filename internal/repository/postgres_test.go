package repository

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (LibraryRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var entryColumns = []string{"id", "created_at", "profession", "tone", "transcript", "generated_content"}

func TestPostgresRepository_Append(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	e := testEntry("a")
	mock.ExpectExec("INSERT INTO library_entries").
		WithArgs("a", "u1", e.Timestamp, "coaching", "professional", "transcript a", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), "u1", e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AppendError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO library_entries").WillReturnError(errors.New("disk full"))

	assert.Error(t, repo.Append(context.Background(), "u1", testEntry("a")))
}

func TestPostgresRepository_ListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	content, err := json.Marshal(testEntry("a").GeneratedContent)
	require.NoError(t, err)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT id, created_at, profession, tone, transcript, generated_content").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("a", ts, "coaching", "professional", "transcript a", content).
			AddRow("b", ts.Add(time.Minute), "sales", "witty", "transcript b", content))

	list, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "witty", list[1].Tone)
	assert.Equal(t, []string{"linkedin", "email"}, list[1].GeneratedContent.Platforms.Keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByIDNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("FROM library_entries").
		WithArgs("u1", "missing").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	_, err := repo.GetByID(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_GetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	content, err := json.Marshal(testEntry("a").GeneratedContent)
	require.NoError(t, err)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	mock.ExpectQuery(`WHERE user_id = \$1 AND id = \$2`).
		WithArgs("u1", "a").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("a", ts, "coaching", "professional", "transcript a", content))

	e, err := repo.GetByID(context.Background(), "u1", "a")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.True(t, ts.Equal(e.Timestamp))
	assert.Equal(t, []string{"Growth"}, e.GeneratedContent.Themes)
}

func TestPostgresRepository_Delete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM library_entries").
		WithArgs("u1", "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM library_entries").
		WithArgs("u1", "a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "u1", "a"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u1", "a"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// orderedKeys matches a JSON argument whose platform keys appear in order
type orderedKeys []string

func (o orderedKeys) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		return false
	}
	last := -1
	for _, k := range o {
		i := bytes.Index(b, []byte(`"`+k+`":`))
		if i <= last {
			return false
		}
		last = i
	}
	return true
}

func TestPostgresRepository_PlatformOrderRoundTrip(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	e := testEntry("a")
	e.GeneratedContent.Platforms = nil
	for _, id := range []string{"twitter", "linkedin", "blog"} {
		e.GeneratedContent.Platforms.Set(id, "copy for "+id)
	}

	mock.ExpectExec("INSERT INTO library_entries").
		WithArgs("a", "u1", e.Timestamp, "coaching", "professional", "transcript a",
			orderedKeys{"twitter", "linkedin", "blog"}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored := []byte(`{"themes":["Growth"],"platforms":{"twitter":"t","linkedin":"l","blog":"b"},` +
		`"metadata":{"profession":"coaching","tone":"professional","transcriptLength":5,"generatedAt":"2024-01-02T03:04:05Z"}}`)
	mock.ExpectQuery(`ORDER BY seq`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("a", e.Timestamp, "coaching", "professional", "transcript a", stored))

	require.NoError(t, repo.Append(context.Background(), "u1", e))
	list, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"twitter", "linkedin", "blog"}, list[0].GeneratedContent.Platforms.Keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryMigration_PreservesKeyOrder(t *testing.T) {
	sqlText, err := migrations.ReadFile("migrations/00001_create_library_entries.sql")
	require.NoError(t, err)

	assert.Contains(t, string(sqlText), "generated_content JSON ")
	assert.NotContains(t, string(sqlText), "JSONB")
	assert.Contains(t, string(sqlText), "seq               BIGSERIAL")
}
