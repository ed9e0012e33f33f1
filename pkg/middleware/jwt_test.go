package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key"

func generateTestToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func setupTestRouter(config *JWTConfig) *gin.Engine {
	r := gin.New()
	r.Use(JWTMiddleware(config))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		orgID, _ := GetOrgID(c)
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "org_id": orgID, "role": role})
	})
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response %s: %v", body, err)
	}
	return resp.Error.Code
}

func TestJWTMiddleware(t *testing.T) {
	router := setupTestRouter(&JWTConfig{Secret: testSecret})

	t.Run("valid token passes claims through", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"org_id":  "org-1",
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["user_id"] != "user-1" || body["org_id"] != "org-1" || body["role"] != "admin" {
			t.Errorf("unexpected claims: %v", body)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if code := errorCode(t, w.Body.Bytes()); code != "MISSING_TOKEN" {
			t.Errorf("expected MISSING_TOKEN, got %q", code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if code := errorCode(t, w.Body.Bytes()); code != "INVALID_TOKEN" {
			t.Errorf("expected INVALID_TOKEN, got %q", code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"org_id":  "org-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if code := errorCode(t, w.Body.Bytes()); code != "TOKEN_EXPIRED" {
			t.Errorf("expected TOKEN_EXPIRED, got %q", code)
		}
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"org_id":  "org-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}, "other-secret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"org_id": "org-1",
			"exp":    time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing org_id claim", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if code := errorCode(t, w.Body.Bytes()); code != "INVALID_TOKEN" {
			t.Errorf("expected INVALID_TOKEN, got %q", code)
		}
	})

	t.Run("role claim is optional", func(t *testing.T) {
		token := generateTestToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"org_id":  "org-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestJWTMiddlewareSkipPaths(t *testing.T) {
	router := setupTestRouter(&JWTConfig{
		Secret:    testSecret,
		SkipPaths: []string{"/open"},
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected skip path to bypass auth, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	newRouter := func(role string, required ...string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(ContextKeyRole, role)
			c.Next()
		})
		r.Use(RequireRole(required...))
		r.GET("/admin", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("allowed role", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("admin", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("forbidden role", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("field_agent", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
}
