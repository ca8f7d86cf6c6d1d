package database

import (
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "nemoris",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "mongodb"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)

		assert.NoError(t, db.Exec("CREATE TABLE ping_check (id INTEGER PRIMARY KEY)").Error)
		assert.NoError(t, Close(db))
	})
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{
		Driver:   DriverMySQL,
		Host:     "db.internal",
		Port:     3307,
		User:     "nemoris",
		Password: "p@ss:w/rd%?&=",
		Name:     "clinic",
	}

	parsed, err := gomysql.ParseDSN(mysqlDSN(cfg, 5))
	require.NoError(t, err)

	assert.Equal(t, "nemoris", parsed.User)
	assert.Equal(t, "p@ss:w/rd%?&=", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "clinic", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Equal(t, 5*time.Second, parsed.ReadTimeout)
	assert.Equal(t, 5*time.Second, parsed.WriteTimeout)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}
