package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"tiketku/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type TestSuite struct {
	suite.Suite
	Token *string
}

const testSecret = "test-secret"

// stubAuthMiddleware validates the token signature only, without the
// user lookup the real middleware does.
func stubAuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := parts[1]
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	uid, _ := strconv.Atoi(claims.Subject)
	ctx.Set("id", uint(uid))
	ctx.Set("email", claims.Email)
	ctx.Set("role", claims.Role)
}

func (s *TestSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", testSecret)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
	}

	claims := &types.Claims{
		Email: "someone@example.com",
		Role:  string(types.ROLE_ADMIN),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "1",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		log.Fatalf("Error generating JWT token: %s\n", err.Error())
	}
	s.Token = &token
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestCheckoutRequiresAuth() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(stubAuthMiddleware)
	transactionHandlers(apiv1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/checkout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestCheckoutValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(stubAuthMiddleware)
	transactionHandlers(apiv1)

	token := *s.Token

	s.Run("Should reject an empty body with 400", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader("{}"))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		errMsg := gjson.Get(w.Body.String(), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject a zero quantity with 400", func() {
		body := map[string]any{
			"event":       1,
			"ticket_type": 1,
			"quantity":    0,
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader(string(sbody)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject negative points with 400", func() {
		body := map[string]any{
			"event":       1,
			"ticket_type": 1,
			"quantity":    2,
			"points_used": -500,
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader(string(sbody)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestTransactionURIValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(stubAuthMiddleware)
	transactionHandlers(apiv1)
	adminHandlers(apiv1)

	token := *s.Token

	s.Run("Should reject a non-uuid transaction id with 400", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/transactions/not-a-uuid/cancel", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a rejection without a reason with 400", func() {
		w := httptest.NewRecorder()
		id := "0b201d26-1f26-4a59-9c3a-523b0b6cbb0e"
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/admin/transactions/%s/reject", id), strings.NewReader("{}"))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		errMsg := gjson.Get(w.Body.String(), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})
}

func (s *TestSuite) TestEventValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(stubAuthMiddleware)
	organizerHandlers(apiv1)

	token := *s.Token

	s.Run("Should reject an event in the past with 400", func() {
		body := types.CreateEventRequestBody{
			Title:     "test event",
			Location:  "Jakarta",
			StartDate: "2020-01-01 10:00:00 +07:00",
			EndDate:   "2020-01-02 10:00:00 +07:00",
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/events", strings.NewReader(string(sbody)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		errMsg := gjson.Get(w.Body.String(), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject an end date before the start date with 400", func() {
		body := types.CreateEventRequestBody{
			Title:     "test event",
			Location:  "Jakarta",
			StartDate: "2030-06-02 10:00:00 +07:00",
			EndDate:   "2030-06-01 10:00:00 +07:00",
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/events", strings.NewReader(string(sbody)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
