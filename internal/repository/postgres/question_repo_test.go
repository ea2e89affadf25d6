package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// ============================================================================
// Тесты каскадного удаления вопроса
// ============================================================================

// recordingConn - минимальное соединение database/sql, которое записывает
// выполненный SQL. Позволяет проверять, какие запросы и в каком порядке
// GORM отправляет в БД, без живого PostgreSQL.
type recordingConn struct {
	execs        *[]string
	rowsAffected int64
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *recordingConn) Close() error                              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error)                 { return recordingTx{}, nil }

func (c *recordingConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return recordingTx{}, nil
}

func (c *recordingConn) Ping(ctx context.Context) error { return nil }

func (c *recordingConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	*c.execs = append(*c.execs, query)
	return driver.RowsAffected(c.rowsAffected), nil
}

type recordingTx struct{}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type recordingDriver struct{}

func (recordingDriver) Open(name string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

type recordingConnector struct {
	conn *recordingConn
}

func (c recordingConnector) Connect(ctx context.Context) (driver.Conn, error) { return c.conn, nil }
func (c recordingConnector) Driver() driver.Driver                            { return recordingDriver{} }

func createRecordingRepo(t *testing.T, rowsAffected int64) (*QuestionRepo, *[]string) {
	t.Helper()

	execs := &[]string{}
	sqlDB := sql.OpenDB(recordingConnector{conn: &recordingConn{execs: execs, rowsAffected: rowsAffected}})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewQuestionRepo(db), execs
}

func TestQuestionRepo_DeleteCascade_ChildrenDeletedBeforeQuestion(t *testing.T) {
	// Arrange
	repo, execs := createRecordingRepo(t, 1)

	// Act
	err := repo.DeleteCascade(42)

	// Assert
	require.NoError(t, err)
	require.Len(t, *execs, 4, "Каскад - ровно четыре DELETE в одной транзакции")

	for _, query := range *execs {
		assert.True(t, strings.HasPrefix(query, "DELETE"), "Неожиданный запрос: %s", query)
	}

	// Внешние ключи проверяются на каждый statement: строка questions
	// должна удаляться последней, когда на нее уже никто не ссылается
	assert.Contains(t, (*execs)[0], `"user_answers"`)
	assert.Contains(t, (*execs)[1], `"comments"`)
	assert.Contains(t, (*execs)[2], `"answer_options"`)
	assert.Contains(t, (*execs)[3], `"questions"`)
}

func TestQuestionRepo_DeleteCascade_NotFound(t *testing.T) {
	// Arrange: БД не нашла ни одной строки для удаления
	repo, _ := createRecordingRepo(t, 0)

	// Act
	err := repo.DeleteCascade(999)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
