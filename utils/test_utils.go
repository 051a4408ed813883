package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wirefeed/wirefeed/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testDBPrefix         = "testonlydb_"
	testDBNameCharLength = 8
)

// CreateTempDB opens a fresh in-memory sqlite database with all tables
// migrated. Each call gets its own named shared-cache database so
// parallel tests never see each other's rows; the connection pool is
// torn down on test cleanup.
func CreateTempDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A distinct name per call: plain ":memory:" would give every pooled
	// connection its own empty database.
	dbName := testDBPrefix + RandomAlphabetString(testDBNameCharLength)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, DatabaseSetupAndMigration(db))

	t.Cleanup(func() {
		conn, _ := db.DB()
		conn.Close()
	})

	return db
}

// CreateTestUser inserts a user with the given username, does sanity
// checks and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := model.User{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NotZero(t, user.Id)
	return &user
}

// CreateTestPost inserts a post for owner at the given timestamp, does
// sanity checks and returns it.
func CreateTestPost(t *testing.T, db *gorm.DB, owner *model.User, content string, timestamp time.Time) *model.Post {
	t.Helper()

	post := model.Post{
		UserID:    owner.Id,
		Content:   content,
		Timestamp: timestamp,
	}
	require.NoError(t, db.Create(&post).Error)
	require.NotZero(t, post.Id)
	return &post
}
