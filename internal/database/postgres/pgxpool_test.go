package postgres

import (
	"testing"

	"skill-hire/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN_QuotesValuesAndSkipsEmpty(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " localhost ",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "it's a secret",
		DBName:     "skillhire",
	})

	assert.Equal(t, `host='localhost' port='5432' user='app' password='it\'s a secret' dbname='skillhire'`, dsn)
}
