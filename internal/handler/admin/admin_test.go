package admin

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ecocoin/internal/database"
	"ecocoin/internal/logging"
	"ecocoin/internal/model"
	"ecocoin/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	name string
	data any
}

func (r *stubRenderer) Render(_ io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name, r.data = name, data
	return nil
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func restoreGlobals() {
	listUsers = service.ListUsers
	getUser = service.GetUser
	editUser = service.EditUser
	deleteUser = service.DeleteUser
}

var (
	db  = &database.FakeDB{}
	log = logging.Discard()
)

func newAdminCtx(method, id, body string) (echo.Context, *httptest.ResponseRecorder, *stubRenderer) {
	e := echo.New()
	r := &stubRenderer{}
	e.Renderer = r
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(method, "/admin/edit/"+id, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/admin/edit/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec, r
}

func flashOf(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "eco_flash" {
			return true
		}
	}
	return false
}

// flashMessage 解出 eco_flash cookie 內的訊息
func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "eco_flash" {
			raw, err := base64.RawURLEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			_, msg, _ := strings.Cut(string(raw), "|")
			return msg
		}
	}
	t.Fatal("no flash cookie")
	return ""
}

func TestListHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	users := []model.User{{ID: 1}, {ID: 2}}
	listUsers = func(context.Context, database.Querier) ([]model.User, error) { return users, nil }

	c, rec, r := newAdminCtx(http.MethodGet, "", "")
	require.NoError(t, ListHandler(db, log)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin", r.name)
	require.Equal(t, users, r.data)

	listUsers = func(context.Context, database.Querier) ([]model.User, error) { return nil, errors.New("down") }
	c, _, _ = newAdminCtx(http.MethodGet, "", "")
	require.Error(t, ListHandler(db, log)(c))
}

func TestDeleteHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)

	for name, tc := range map[string]struct {
		id  string
		err error
	}{
		"success":   {id: "3"},
		"not found": {id: "3", err: service.ErrNotFound},
		"failure":   {id: "3", err: errors.New("down")},
		"bad id":    {id: "abc"},
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			deleteUser = func(_ context.Context, _ database.Querier, id int) error {
				called = true
				require.Equal(t, 3, id)
				return tc.err
			}
			c, rec, _ := newAdminCtx(http.MethodPost, tc.id, "")
			require.NoError(t, DeleteHandler(db, log)(c))
			require.Equal(t, http.StatusFound, rec.Code)
			require.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))
			require.True(t, flashOf(rec))
			require.Equal(t, tc.id == "3", called)
		})
	}
}

func TestEditPageHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	u := &model.User{ID: 4}
	getUser = func(context.Context, database.Querier, int) (*model.User, error) { return u, nil }

	c, _, r := newAdminCtx(http.MethodGet, "4", "")
	require.NoError(t, EditPageHandler(db, log)(c))
	require.Equal(t, "admin_edit", r.name)
	require.Same(t, u, r.data)

	getUser = func(context.Context, database.Querier, int) (*model.User, error) { return nil, service.ErrNotFound }
	c, rec, _ := newAdminCtx(http.MethodGet, "4", "")
	require.NoError(t, EditPageHandler(db, log)(c))
	require.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))

	getUser = func(context.Context, database.Querier, int) (*model.User, error) { return nil, errors.New("down") }
	c, _, _ = newAdminCtx(http.MethodGet, "4", "")
	require.Error(t, EditPageHandler(db, log)(c))
}

func TestEditHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	form := url.Values{
		"name":       {"Bob"},
		"email":      {"bob@x.com"},
		"balance":    {"40"},
		"joined":     {"2024"},
		"secret_pin": {"123123"},
	}

	t.Run("success", func(t *testing.T) {
		var got service.AdminEdit
		editUser = func(_ context.Context, _ database.Querier, id int, in service.AdminEdit) error {
			require.Equal(t, 4, id)
			got = in
			return nil
		}
		c, rec, _ := newAdminCtx(http.MethodPost, "4", form.Encode())
		require.NoError(t, EditHandler(db, log)(c))
		require.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, service.AdminEdit{Name: "Bob", Email: "bob@x.com", Balance: 40, Joined: "2024", SecretPin: "123123"}, got)
	})

	t.Run("invalid email stays on edit page", func(t *testing.T) {
		bad := url.Values{"name": {"Bob"}, "email": {"nope"}}
		c, rec, _ := newAdminCtx(http.MethodPost, "4", bad.Encode())
		require.NoError(t, EditHandler(db, log)(c))
		require.Equal(t, "/admin/edit/4", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, "Invalid email or PIN (6 digits).", flashMessage(t, rec))
	})

	t.Run("bad pin", func(t *testing.T) {
		bad := url.Values{"name": {"Bob"}, "email": {"bob@x.com"}, "secret_pin": {"12"}}
		c, rec, _ := newAdminCtx(http.MethodPost, "4", bad.Encode())
		require.NoError(t, EditHandler(db, log)(c))
		require.Equal(t, "/admin/edit/4", rec.Header().Get(echo.HeaderLocation))
		msg := flashMessage(t, rec)
		require.Equal(t, "Invalid email or PIN (6 digits).", msg)
		require.NotContains(t, msg, "Key:")
	})

	for name, tc := range map[string]struct {
		err      error
		location string
	}{
		"duplicate email": {service.ErrDuplicateEmail, "/admin/edit/4"},
		"duplicate pin":   {service.ErrDuplicatePin, "/admin/edit/4"},
		"validation":      {service.ErrValidation, "/admin/edit/4"},
		"not found":       {service.ErrNotFound, "/admin"},
	} {
		t.Run(name, func(t *testing.T) {
			editUser = func(context.Context, database.Querier, int, service.AdminEdit) error { return tc.err }
			c, rec, _ := newAdminCtx(http.MethodPost, "4", form.Encode())
			require.NoError(t, EditHandler(db, log)(c))
			require.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation))
			require.True(t, flashOf(rec))
		})
	}

	t.Run("unexpected", func(t *testing.T) {
		editUser = func(context.Context, database.Querier, int, service.AdminEdit) error { return errors.New("down") }
		c, _, _ := newAdminCtx(http.MethodPost, "4", form.Encode())
		require.Error(t, EditHandler(db, log)(c))
	})
}
