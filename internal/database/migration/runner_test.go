package migration

import (
	"testing"
	"testing/fstest"

	"jobboard/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX x ON t (a);")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":         {Data: []byte("ignored")},
		"V3_bad_name.sql":   {Data: []byte("SELECT 1;")},
	}

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := loadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Contains(t, migs[0].SQL, "UNIQUE (job_id, user_id)")
}
