package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sandunipw/school_manager/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newAuthTestApp swaps the global connection for an in-memory database so the
// registration path runs against a real unique constraint. TranslateError
// matches the production connection config, turning the driver's duplicate-key
// error into gorm.ErrDuplicatedKey.
func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id text PRIMARY KEY,
		full_name text NOT NULL,
		email text NOT NULL UNIQUE,
		password text NOT NULL,
		role text NOT NULL DEFAULT 'student',
		date_of_birth datetime,
		gender text,
		contact text,
		class_name text,
		stream text,
		parent_name text,
		child_email text,
		profile_picture_url text,
		is_active boolean DEFAULT true,
		created_at datetime,
		updated_at datetime
	)`).Error)

	old := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = old })

	app := fiber.New()
	app.Post("/api/v1/auth/register", RegisterUser)
	return app
}

func TestRegisterUserDuplicateEmailConflicts(t *testing.T) {
	app := newAuthTestApp(t)

	body := `{"role":"student","full_name":"Nimal Perera","email":"nimal@example.com","password":"secret1"}`

	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
