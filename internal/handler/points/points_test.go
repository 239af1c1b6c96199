package points

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecocoin/internal/api"
	"ecocoin/internal/logging"
	"ecocoin/internal/model"
	"ecocoin/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	PostFn   func(ctx context.Context, userID int, p service.Posting) (int, error)
	ByPinFn  func(ctx context.Context, pin string, p service.Posting) (int, error)
	LookupFn func(ctx context.Context, pin string) (*model.User, error)
}

func (f *fakeLedger) PostPoints(ctx context.Context, userID int, p service.Posting) (int, error) {
	return f.PostFn(ctx, userID, p)
}

func (f *fakeLedger) PostPointsByPin(ctx context.Context, pin string, p service.Posting) (int, error) {
	return f.ByPinFn(ctx, pin, p)
}

func (f *fakeLedger) LookupByPin(ctx context.Context, pin string) (*model.User, error) {
	return f.LookupFn(ctx, pin)
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	return resp
}

func TestUpdatePointsHandler(t *testing.T) {
	log := logging.Discard()

	t.Run("success", func(t *testing.T) {
		l := &fakeLedger{PostFn: func(_ context.Context, id int, p service.Posting) (int, error) {
			require.Equal(t, 1, id)
			require.Equal(t, service.Posting{Material: "plastic", Weight: 2.5, Points: 10}, p)
			return 10, nil
		}}
		c, rec := newCtx(http.MethodPost, "/api/update-points", `{"user_id":1,"material":"plastic","weight":2.5,"points":10}`)
		require.NoError(t, UpdatePointsHandler(l, log)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.PointsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, api.PointsResponse{Success: true, NewBalance: 10}, resp)
	})

	t.Run("missing user_id", func(t *testing.T) {
		l := &fakeLedger{PostFn: func(context.Context, int, service.Posting) (int, error) {
			t.Fatal("ledger must not be called")
			return 0, nil
		}}
		c, rec := newCtx(http.MethodPost, "/api/update-points", `{"points":5}`)
		require.NoError(t, UpdatePointsHandler(l, log)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "user_id required", decodeError(t, rec).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, rec := newCtx(http.MethodPost, "/api/update-points", `{"user_id":`)
		require.NoError(t, UpdatePointsHandler(&fakeLedger{}, log)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	for name, tc := range map[string]struct {
		err    error
		status int
		msg    string
	}{
		"unknown user": {service.ErrNotFound, http.StatusNotFound, "User not found"},
		"db failure":   {errors.New("down"), http.StatusInternalServerError, "internal error"},
	} {
		t.Run(name, func(t *testing.T) {
			l := &fakeLedger{PostFn: func(context.Context, int, service.Posting) (int, error) { return 0, tc.err }}
			c, rec := newCtx(http.MethodPost, "/api/update-points", `{"user_id":99,"points":5}`)
			require.NoError(t, UpdatePointsHandler(l, log)(c))
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.msg, decodeError(t, rec).Error)
		})
	}
}

func TestGetUserByPinHandler(t *testing.T) {
	log := logging.Discard()
	l := &fakeLedger{LookupFn: func(_ context.Context, pin string) (*model.User, error) {
		if pin == "424242" {
			return &model.User{ID: 7, Name: "Alice", Email: "alice@example.com", Balance: 15}, nil
		}
		return nil, service.ErrUnknownPin
	}}

	c, rec := newCtx(http.MethodGet, "/api/get_user_by_pin?pin=424242", "")
	require.NoError(t, GetUserByPinHandler(l, log)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.PinUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, api.PinUserResponse{Success: true, UserID: 7, Name: "Alice", Email: "alice@example.com", Balance: 15}, resp)

	c, rec = newCtx(http.MethodGet, "/api/get_user_by_pin", "")
	require.NoError(t, GetUserByPinHandler(l, log)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "PIN required", decodeError(t, rec).Error)

	c, rec = newCtx(http.MethodGet, "/api/get_user_by_pin?pin=000000", "")
	require.NoError(t, GetUserByPinHandler(l, log)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", decodeError(t, rec).Error)
}

func TestUpdatePointsByPinHandler(t *testing.T) {
	log := logging.Discard()

	t.Run("success", func(t *testing.T) {
		l := &fakeLedger{ByPinFn: func(_ context.Context, pin string, p service.Posting) (int, error) {
			require.Equal(t, "424242", pin)
			require.Equal(t, 5, p.Points)
			return 20, nil
		}}
		c, rec := newCtx(http.MethodPost, "/api/update_points_by_pin", `{"pin":" 424242 ","material":"glass","weight":1.2,"points":5}`)
		require.NoError(t, UpdatePointsByPinHandler(l, log)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.PointsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 20, resp.NewBalance)
	})

	t.Run("missing pin", func(t *testing.T) {
		c, rec := newCtx(http.MethodPost, "/api/update_points_by_pin", `{"points":5}`)
		require.NoError(t, UpdatePointsByPinHandler(&fakeLedger{}, log)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "PIN required", decodeError(t, rec).Error)
	})

	t.Run("unknown pin", func(t *testing.T) {
		l := &fakeLedger{ByPinFn: func(context.Context, string, service.Posting) (int, error) { return 0, service.ErrUnknownPin }}
		c, rec := newCtx(http.MethodPost, "/api/update_points_by_pin", `{"pin":"000000","points":5}`)
		require.NoError(t, UpdatePointsByPinHandler(l, log)(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Invalid PIN", decodeError(t, rec).Error)
	})

	t.Run("db failure", func(t *testing.T) {
		l := &fakeLedger{ByPinFn: func(context.Context, string, service.Posting) (int, error) { return 0, errors.New("down") }}
		c, rec := newCtx(http.MethodPost, "/api/update_points_by_pin", `{"pin":"424242","points":5}`)
		require.NoError(t, UpdatePointsByPinHandler(l, log)(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
