package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskmanager/config"
	apimiddleware "taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/router"
	"taskmanager/internal/delivery/api/router/handler"
	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/infra/auth"
	"taskmanager/internal/infra/persistence/postgres"
	"taskmanager/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "root@example.com"
	testAdminPassword = "R00t!Password"
	testPassword      = "Str0ng!Pass"
)

// testAPI drives the real echo stack backed by an in-memory SQLite database.
type testAPI struct {
	t    *testing.T
	echo *echo.Echo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(context.Background(), db))

	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.JWT = config.JWTConfig{
		Secret:   "integration_secret_key_long_enough_for_hs256",
		Issuer:   "TaskManager",
		Audience: "TaskManagerUsers",
		TTL:      time.Hour,
	}
	cfg.PasswordStrength = config.DefaultPasswordStrength()
	cfg.Bootstrap = &config.BootstrapConfig{
		Admin: config.AdminAccountConfig{Email: testAdminEmail, Password: testAdminPassword},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	policy := auth.NewPasswordPolicy(cfg)
	tokens, err := auth.NewJWTService(cfg, log)
	require.NoError(t, err)

	seeder := impl.NewAdminSeeder(impl.AdminSeederParams{
		Config:         cfg,
		TxManager:      txManager,
		Hasher:         hasher,
		PasswordPolicy: policy,
		Logger:         log,
	})
	_, created, err := seeder.EnsureAdmin(context.Background())
	require.NoError(t, err)
	require.True(t, created)

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:      txManager,
		UserRepo:       userRepo,
		Hasher:         hasher,
		PasswordPolicy: policy,
		TokenService:   tokens,
		Logger:         log,
	})
	taskUC := impl.NewTaskService(impl.TaskServiceParams{
		TaskRepo: taskRepo,
		UserRepo: userRepo,
		Logger:   log,
	})

	e := NewEcho(cfg, log, router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: log}),
		TaskHandler:    handler.NewTaskHandler(handler.TaskHandlerParams{TaskUC: taskUC, Logger: log}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens, log),
	})

	return &testAPI{t: t, echo: e}
}

func (api *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	api.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(api.t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)

	return rec
}

type authBody struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type taskBody struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
	UserID int64  `json:"userId"`
}

type userBody struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Role  string     `json:"role"`
	Tasks []taskBody `json:"tasks"`
}

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func (api *testAPI) register(email string) authBody {
	api.t.Helper()

	rec := api.do(http.MethodPost, "/users/register", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(api.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[authBody](api.t, rec)
}

func (api *testAPI) login(email, password string) authBody {
	api.t.Helper()

	rec := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": password})
	require.Equal(api.t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[authBody](api.t, rec)
}

func (api *testAPI) createTask(token string, userID int64, title string) taskBody {
	api.t.Helper()

	rec := api.do(http.MethodPost, "/tasks", token, map[string]any{"title": title, "isDone": false, "userId": userID})
	require.Equal(api.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[taskBody](api.t, rec)
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	registered := api.register("A@x.com ")
	assert.Equal(t, "a@x.com", registered.Email)
	assert.NotEmpty(t, registered.Token)

	t.Run("same identity after normalization", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": testPassword})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "USER_ALREADY_EXISTS", decode[errorEnvelope](t, rec).Error.Code)
	})

	t.Run("login is case insensitive", func(t *testing.T) {
		loggedIn := api.login(" a@X.COM", testPassword)
		assert.Equal(t, registered.ID, loggedIn.ID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		for _, email := range []string{"a@x.com", "ghost@x.com"} {
			rec := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": "Wr0ng!Pass"})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid email or password", decode[errorEnvelope](t, rec).Error.Message)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/users/register", "", map[string]string{"email": "b@x.com", "password": "NoDigits!!"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorEnvelope](t, rec)
		assert.Equal(t, "PASSWORD_STRENGTH", body.Error.Code)
		assert.Contains(t, body.Error.Message, "digit")
	})

	t.Run("token identifies the account", func(t *testing.T) {
		rec := api.do(http.MethodGet, fmt.Sprintf("/users/%d", registered.ID), registered.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode[userBody](t, rec)
		assert.Equal(t, "User", user.Role)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestAPI_RegisterLongPasswords(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "128 characters", email: "long@x.com", password: "Aa1!" + strings.Repeat("x", 124)},
		{name: "multibyte over 72 bytes", email: "umlaut@x.com", password: "Aa1!" + strings.Repeat("ü", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/users/register", "", map[string]string{"email": tt.email, "password": tt.password})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			registered := decode[authBody](t, rec)

			loggedIn := api.login(tt.email, tt.password)
			assert.Equal(t, registered.ID, loggedIn.ID)

			rec = api.do(http.MethodPost, "/users/login", "", map[string]string{"email": tt.email, "password": tt.password[:72]})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("129 characters rejected", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/users/register", "", map[string]string{"email": "toolong@x.com", "password": "Aa1!" + strings.Repeat("x", 125)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "PASSWORD_STRENGTH", decode[errorEnvelope](t, rec).Error.Code)
	})
}

func TestAPI_Authentication(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[errorEnvelope](t, rec)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)
	assert.Equal(t, rec.Header().Get(deliverycontext.HeaderXRequestID), body.Meta.RequestID)

	rec = api.do(http.MethodGet, "/tasks", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decode[errorEnvelope](t, rec).Error.Code)
}

func TestAPI_TaskOwnership(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice@x.com")
	bob := api.register("bob@x.com")
	admin := api.login(testAdminEmail, testAdminPassword)

	aliceTask := api.createTask(alice.Token, alice.ID, "alice's task")
	api.createTask(bob.Token, bob.ID, "bob's task")

	taskPath := fmt.Sprintf("/tasks/%d", aliceTask.ID)

	t.Run("other users are refused", func(t *testing.T) {
		for _, token := range []string{bob.Token, admin.Token} {
			assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, taskPath, token, nil).Code)
			assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, taskPath, token, map[string]any{"title": "mine", "isDone": true}).Code)
			assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, taskPath, token, nil).Code)
		}
	})

	t.Run("create for another user", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/tasks", bob.Token, map[string]any{"title": "x", "userId": alice.ID})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = api.do(http.MethodPost, "/tasks", bob.Token, map[string]any{"title": "x", "userId": 99999})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/tasks", alice.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		tasks := decode[[]taskBody](t, rec)
		require.Len(t, tasks, 1)
		assert.Equal(t, aliceTask.ID, tasks[0].ID)

		rec = api.do(http.MethodGet, "/tasks", admin.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("owner updates", func(t *testing.T) {
		rec := api.do(http.MethodPut, taskPath, alice.Token, map[string]any{"title": "  done  ", "isDone": true})
		require.Equal(t, http.StatusOK, rec.Code)
		task := decode[taskBody](t, rec)
		assert.Equal(t, "done", task.Title)
		assert.True(t, task.IsDone)
	})

	t.Run("delete twice", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, taskPath, alice.Token, nil).Code)
		rec := api.do(http.MethodDelete, taskPath, alice.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "TASK_NOT_FOUND", decode[errorEnvelope](t, rec).Error.Code)
	})
}

func TestAPI_TaskValidation(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice@x.com")

	rec := api.do(http.MethodPost, "/tasks", alice.Token, map[string]any{"title": strings.Repeat("x", 201), "userId": alice.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorEnvelope](t, rec).Error.Details, "title")

	rec = api.do(http.MethodPost, "/tasks", alice.Token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorEnvelope](t, rec).Error.Details, "userId")

	rec = api.do(http.MethodGet, "/tasks/abc", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decode[errorEnvelope](t, rec).Error.Code)

	created := api.do(http.MethodPost, "/tasks", alice.Token, map[string]any{"title": "x", "userId": alice.ID})
	require.Equal(t, http.StatusCreated, created.Code)
	task := decode[taskBody](t, created)
	assert.Equal(t, fmt.Sprintf("/tasks/%d", task.ID), created.Header().Get(echo.HeaderLocation))
}

func TestAPI_UserAdministration(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice@x.com")
	bob := api.register("bob@x.com")
	admin := api.login(testAdminEmail, testAdminPassword)
	api.createTask(alice.Token, alice.ID, "first")

	alicePath := fmt.Sprintf("/users/%d", alice.ID)

	t.Run("listing requires admin", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/users", alice.Token, nil).Code)

		rec := api.do(http.MethodGet, "/users", admin.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]userBody](t, rec), 3)
	})

	t.Run("users cannot see each other", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, alicePath, bob.Token, nil).Code)
		assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, alicePath, bob.Token, nil).Code)
		// Authorization is decided before existence.
		assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/users/99999", bob.Token, nil).Code)
	})

	t.Run("admin reads with tasks", func(t *testing.T) {
		rec := api.do(http.MethodGet, alicePath, admin.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode[userBody](t, rec)
		require.Len(t, user.Tasks, 1)
		assert.Equal(t, "first", user.Tasks[0].Title)

		assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/users/99999", admin.Token, nil).Code)
	})

	t.Run("admin deletes account and its tasks", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, alicePath, admin.Token, nil).Code)
		assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, alicePath, admin.Token, nil).Code)
		assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, alicePath, admin.Token, nil).Code)

		rec := api.do(http.MethodPost, "/tasks", alice.Token, map[string]any{"title": "orphan", "userId": alice.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User does not exist", decode[errorEnvelope](t, rec).Error.Message)
	})
}
