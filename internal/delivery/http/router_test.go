package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docscript/config"
	"docscript/internal/delivery/http/handler"
	"docscript/internal/delivery/http/middleware"
	"docscript/internal/infrastructure/cache"
	"docscript/internal/repository/memory"
	"docscript/internal/usecase"
	"docscript/pkg/jwt"
	"docscript/pkg/validator"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bootstrapEmail = "admin@clinic.test"

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Count   *int              `json:"count"`
	Details map[string]string `json:"details"`
}

type testServer struct {
	handler  http.Handler
	clinicID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithAdmin(t, bootstrapEmail)
}

func newTestServerWithAdmin(t *testing.T, initAdminEmail string) *testServer {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	ctx := context.Background()

	users := memory.NewUserRepository()
	patients := memory.NewPatientRepository()
	clinics := memory.NewClinicRepository()

	clinicID, err := usecase.ResolveClinic(ctx, log, clinics, "")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "router-test-secret", Expiry: 7 * 24 * time.Hour})
	denylist := cache.NewMemoryTokenDenylist()
	v := validator.NewValidator()

	router := NewRouter(
		handler.NewAuthHandler(usecase.NewAuthUsecase(log, users, jwtService, denylist, clinicID, initAdminEmail), v),
		handler.NewUserHandler(usecase.NewUserUsecase(log, users, jwtService, clinicID), v),
		handler.NewPatientHandler(usecase.NewPatientUsecase(log, patients, clinicID), v),
		handler.NewClinicHandler(usecase.NewClinicUsecase(log, clinics, clinicID)),
		middleware.NewAuthMiddleware(jwtService, denylist),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
	)

	return &testServer{handler: router.Setup(), clinicID: clinicID}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

type authData struct {
	User struct {
		ID       uuid.UUID `json:"id"`
		Email    string    `json:"email"`
		Role     string    `json:"role"`
		Approved bool      `json:"approved"`
	} `json:"user"`
	Token string `json:"token"`
}

type patientData struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
	Date     string    `json:"date"`
	Age      string    `json:"age"`
	ClinicID uuid.UUID `json:"clinicId"`
	Diseases struct {
		Hypertension bool `json:"hypertension"`
	} `json:"diseases"`
}

func (s *testServer) register(t *testing.T, email, password string) authData {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestEndToEnd_AdminPatientFlow(t *testing.T) {
	s := newTestServer(t)

	registered := s.register(t, bootstrapEmail, "secret")
	assert.Equal(t, "ADMIN", registered.User.Role)
	assert.True(t, registered.User.Approved)
	assert.NotEmpty(t, registered.Token)

	rec, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": bootstrapEmail, "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login authData
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "ADMIN", login.User.Role)
	assert.True(t, login.User.Approved)
	token := login.Token

	rec, env = s.do(t, http.MethodPost, "/api/patients", token, map[string]string{"name": "Ali", "mobile": "0300", "date": "2024-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created patientData
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, s.clinicID, created.ClinicID)
	assert.Empty(t, created.Age)

	rec, env = s.do(t, http.MethodGet, "/api/patients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []patientData
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	rec, env = s.do(t, http.MethodPut, "/api/patients/"+created.ID.String(), token, map[string]string{"name": "", "mobile": "0300", "date": "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Patient Name, Mobile, and Date are mandatory.", env.Error)
}

func TestAuth_Errors(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "user@clinic.test", "secret")

	rec, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "user@clinic.test", "password": "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	rec, env = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "new@clinic.test"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password required", env.Error)

	rec, wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "user@clinic.test", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, unknownEmail := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@clinic.test", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPassword.Error, unknownEmail.Error)

	rec, env = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing token", env.Error)

	rec, env = s.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", env.Error)
}

func TestAuth_AcceptsAnyNonEmptyEmail(t *testing.T) {
	s := newTestServerWithAdmin(t, "admin@localhost")

	rec, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Error)

	admin := s.register(t, "admin@localhost", "secret")
	assert.Equal(t, "ADMIN", admin.User.Role)
	assert.True(t, admin.User.Approved)

	frontdesk := s.register(t, "frontdesk", "secret")
	assert.Equal(t, "USER", frontdesk.User.Role)

	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "frontdesk", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleEnforcement(t *testing.T) {
	s := newTestServer(t)
	admin := s.register(t, bootstrapEmail, "secret")
	user := s.register(t, "nurse@clinic.test", "secret")
	assert.False(t, user.User.Approved)

	rec, env := s.do(t, http.MethodGet, "/api/patients", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", env.Error)

	rec, _ = s.do(t, http.MethodPost, "/api/patients", user.Token, map[string]string{"name": "Ali", "mobile": "0300", "date": "2024-01-01"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/stats", admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserManagementRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.register(t, bootstrapEmail, "secret")
	nurse := s.register(t, "nurse@clinic.test", "secret")

	rec, env := s.do(t, http.MethodPatch, "/api/users/"+nurse.User.ID.String()+"/approve", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User approved", env.Message)

	rec, env = s.do(t, http.MethodGet, "/api/auth/me", nurse.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Approved bool `json:"approved"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.True(t, me.Approved)

	rec, _ = s.do(t, http.MethodPatch, "/api/users/"+uuid.New().String()+"/make-admin", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/users/not-a-uuid", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/users/"+nurse.User.ID.String(), admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	for _, u := range users {
		assert.NotEqual(t, nurse.User.ID, u.ID)
	}
	assert.NotContains(t, string(env.Data), "password")

	rec, env = s.do(t, http.MethodPost, "/api/users/create-admin", admin.Token, map[string]string{"email": "second@clinic.test", "password": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var second authData
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, "ADMIN", second.User.Role)
	assert.True(t, second.User.Approved)
}

func TestPatientRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, bootstrapEmail, "secret").Token

	rec, env := s.do(t, http.MethodPost, "/api/patients", token, map[string]interface{}{
		"name": "Ali Raza", "mobile": "03001234567", "date": "2024-01-01",
		"diseases": map[string]bool{"hypertension": true},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created patientData
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = s.do(t, http.MethodGet, "/api/patients/search/1234", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	rec, env = s.do(t, http.MethodGet, "/api/patients/search/zzz", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(env.Data))
	assert.Equal(t, 0, *env.Count)

	rec, env = s.do(t, http.MethodPut, "/api/patients/"+created.ID.String(), token, map[string]string{"name": "Ali", "mobile": "0300", "date": "2024-01-02"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated patientData
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Ali", updated.Name)
	assert.True(t, updated.Diseases.Hypertension)

	rec, _ = s.do(t, http.MethodGet, "/api/patients/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())

	rec, env = s.do(t, http.MethodDelete, "/api/patients/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Patient deleted successfully", env.Message)

	rec, env = s.do(t, http.MethodGet, "/api/patients/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Patient not found", env.Error)

	rec, _ = s.do(t, http.MethodPost, "/api/patients", token, map[string]string{"name": "A", "mobile": "1", "date": "2024-01-01", "sex": "Unknown"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatientSearch_KeepsWhitespace(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, bootstrapEmail, "secret").Token

	rec, _ := s.do(t, http.MethodPost, "/api/patients", token, map[string]string{"name": "Ali", "mobile": "0300", "date": "2024-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	for path, want := range map[string]int{
		"/api/patients/search/ali":    1,
		"/api/patients/search/ali%20": 0,
		"/api/patients/search/%20":    0,
	} {
		rec, env := s.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.NotNil(t, env.Count, path)
		assert.Equal(t, want, *env.Count, path)
	}
}

func TestConfigRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, bootstrapEmail, "secret").Token

	rec, env := s.do(t, http.MethodGet, "/api/config", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "REHMAN MEDICAL CENTER")

	rec, env = s.do(t, http.MethodPut, "/api/config", token, map[string]interface{}{"clinicContact": "0300", "logo": "data:x"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Config updated successfully", env.Message)

	rec, env = s.do(t, http.MethodPut, "/api/config", token, map[string]interface{}{"logo": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	var clinic struct {
		ClinicContact string  `json:"clinicContact"`
		Logo          *string `json:"logo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &clinic))
	assert.Equal(t, "0300", clinic.ClinicContact)
	assert.Nil(t, clinic.Logo)
}

func TestLogout_RevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, bootstrapEmail, "secret").Token

	rec, _ := s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", env.Error)
}

func TestHealthAndFallbacks(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running", env.Message)
	assert.Contains(t, rec.Body.String(), "timestamp")

	rec, env = s.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Error)

	rec, env = s.do(t, http.MethodPatch, "/api/health", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Error)

	rec, _ = s.do(t, http.MethodOptions, "/api/patients", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
