package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"julex/internal/cache"
	"julex/internal/http/handlers"
	"julex/internal/repos"
)

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
}

func newTestApp(t *testing.T, opt handlers.Options) *testApp {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := handlers.NewDeps(db, cache.NewMemory(time.Minute))
	ta := &testApp{app: handlers.NewApp(deps, opt), db: db}

	users := repos.NewUserRepo(db)
	for tok, uid := range map[string]string{
		"tok-admin": "u-admin",
		"tok-priya": "u-priya",
		"tok-arjun": "u-arjun",
		"tok-meera": "u-meera",
		"tok-kabir": "u-kabir",
	} {
		require.NoError(t, users.BindSession(context.Background(), tok, uid))
	}
	return ta
}

// do sends a request and decodes a JSON response body into out (if non-nil).
func (ta *testApp) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type listResponse struct {
	Items []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Quote struct {
			EffectivePrice float64  `json:"effectivePrice"`
			IsWholesale    bool     `json:"isWholesale"`
			OriginalPrice  *float64 `json:"originalPrice"`
			Savings        *float64 `json:"savings"`
		} `json:"quote"`
	} `json:"items"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type errResponse struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available *int   `json:"available"`
}
