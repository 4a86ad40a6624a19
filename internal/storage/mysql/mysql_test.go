package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
)

var testDB *sql.DB

// Тесты хранилища идут только против реальной БД: MYSQL_TEST_DSN=user:pass@tcp(host:3306)/test?parseTime=true
func TestMain(m *testing.M) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		os.Exit(m.Run())
	}

	var err error
	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Errorf("не удалось подключиться к тестовой БД: %w", err))
	}

	if err := testDB.Ping(); err != nil {
		panic(fmt.Errorf("ping failed: %w", err))
	}

	if err := (&Storage{db: testDB}).Init(context.Background()); err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) *Storage {
	t.Helper()
	if testDB == nil {
		t.Skip("MYSQL_TEST_DSN is not set")
	}
	return &Storage{db: testDB}
}
