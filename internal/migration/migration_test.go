package migration

import (
	"testing"

	"github.com/smallbiznis/shopdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsCreatesCatalogTables(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, RunMigrations(conn))
	for _, table := range []string{"stores", "categories", "products", "orders", "order_line_items"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	require.NoError(t, RunMigrations(conn), "migrations must be re-runnable")
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	assert.Error(t, RunMigrations(nil))
}
