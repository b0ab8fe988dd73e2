package model

import (
	"path/filepath"
	"testing"

	"media-uploader/backend/common"

	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "model_test.db")

	err := InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		common.SQLitePath = originalSQLitePath
	})
}
