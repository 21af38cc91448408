package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qubeia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetSectionItems(t *testing.T) {
	now := time.Now()
	items := []*models.ContentItem{
		{ID: 2, Section: "general", Title: "Second", Body: "b", AuthorID: 1, Status: models.ContentStatusActive, CreatedAt: now},
		{ID: 1, Section: "general", Title: "First", Body: "a", AuthorID: 2, Status: models.ContentStatusDeleted, CreatedAt: now.Add(-time.Hour)},
	}

	t.Run("Regular user does not see deleted items", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Get("/sections/:section/items", s.GetSectionItems)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)
		m.content.On("ListBySection", mock.Anything, "general").Return(items, nil)

		req := httptest.NewRequest(http.MethodGet, "/sections/general/items", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []models.ContentItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("Unknown section is 404", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Get("/sections/:section/items", s.GetSectionItems)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)

		req := httptest.NewRequest(http.MethodGet, "/sections/lounge/items", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Admin cannot enter dev-panel", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Get("/sections/:section/items", s.GetSectionItems)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)

		req := httptest.NewRequest(http.MethodGet, "/sections/dev-panel/items", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestCreateContentItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Post("/sections/:section/items", s.CreateContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)
		m.content.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.users.On("IncrementActivity", mock.Anything, uint(1), mock.Anything).Return(1, 0, nil)

		resp := postJSON(t, app, "/sections/general/items", map[string]string{
			"title": "Hello",
			"body":  "First post",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Missing title", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Post("/sections/:section/items", s.CreateContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)

		resp := postJSON(t, app, "/sections/general/items", map[string]string{
			"body": "no title",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Entry denial blocks posting", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Post("/sections/:section/items", s.CreateContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)

		resp := postJSON(t, app, "/sections/dev-panel/items", map[string]string{
			"title": "Hi",
			"body":  "let me in",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUpdateContentItem(t *testing.T) {
	t.Run("Author edits active item", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Put("/items/:id", s.UpdateContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)
		m.content.On("UpdateBody", mock.Anything, uint(5), uint(1), "New", "Body").Return(true, nil)
		m.content.On("GetByID", mock.Anything, uint(5)).Return(&models.ContentItem{
			ID: 5, Section: "general", Title: "New", Body: "Body", AuthorID: 1, Status: models.ContentStatusActive,
		}, nil)

		raw, _ := json.Marshal(map[string]string{"title": "New", "body": "Body"})
		req := httptest.NewRequest(http.MethodPut, "/items/5", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Editing a deleted item conflicts", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Put("/items/:id", s.UpdateContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)
		m.content.On("UpdateBody", mock.Anything, uint(5), uint(1), "New", "Body").Return(false, nil)
		m.content.On("GetByID", mock.Anything, uint(5)).Return(&models.ContentItem{
			ID: 5, Section: "general", AuthorID: 1, Status: models.ContentStatusDeleted,
		}, nil)

		raw, _ := json.Marshal(map[string]string{"title": "New", "body": "Body"})
		req := httptest.NewRequest(http.MethodPut, "/items/5", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		s, _ := newTestServer()
		app := newAuthedApp(1)
		app.Put("/items/:id", s.UpdateContentItem)

		raw, _ := json.Marshal(map[string]string{"title": "New", "body": "Body"})
		req := httptest.NewRequest(http.MethodPut, "/items/abc", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteContentItem(t *testing.T) {
	t.Run("Regular user denied", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(1)
		app.Delete("/items/:id", s.DeleteContentItem)

		m.users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: models.RoleUser}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/items/5", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Moderator deletes", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(9)
		app.Delete("/items/:id", s.DeleteContentItem)

		m.users.On("GetByID", mock.Anything, uint(9)).Return(&models.User{ID: 9, Role: models.RoleModerator}, nil)
		m.content.On("MarkDeleted", mock.Anything, uint(5), uint(9)).Return(true, nil)

		req := httptest.NewRequest(http.MethodDelete, "/items/5", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Deleting twice stays OK", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(9)
		app.Delete("/items/:id", s.DeleteContentItem)

		m.users.On("GetByID", mock.Anything, uint(9)).Return(&models.User{ID: 9, Role: models.RoleModerator}, nil)
		m.content.On("MarkDeleted", mock.Anything, uint(5), uint(9)).Return(false, nil)
		m.content.On("GetByID", mock.Anything, uint(5)).Return(&models.ContentItem{
			ID: 5, Status: models.ContentStatusDeleted,
		}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/items/5", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestSetContentReportStatus(t *testing.T) {
	report := &models.ContentItem{
		ID: 5, Section: "bug-reports", AuthorID: 2,
		Status: models.ContentStatusActive, ReportStatus: models.ReportStatusPending,
	}

	t.Run("Developer marks fixed", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(3)
		app.Put("/items/:id/report-status", s.SetContentReportStatus)

		m.users.On("GetByID", mock.Anything, uint(3)).Return(&models.User{ID: 3, Role: models.RoleDeveloper}, nil)
		m.content.On("GetByID", mock.Anything, uint(5)).Return(report, nil)
		m.content.On("SetReportStatus", mock.Anything, uint(5), models.ReportStatusFixed).Return(true, nil)

		raw, _ := json.Marshal(map[string]string{"status": "fixed"})
		req := httptest.NewRequest(http.MethodPut, "/items/5/report-status", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Admin rank does not grant triage", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(4)
		app.Put("/items/:id/report-status", s.SetContentReportStatus)

		m.users.On("GetByID", mock.Anything, uint(4)).Return(&models.User{ID: 4, Role: models.RoleAdmin}, nil)
		m.content.On("GetByID", mock.Anything, uint(5)).Return(report, nil)

		raw, _ := json.Marshal(map[string]string{"status": "fixed"})
		req := httptest.NewRequest(http.MethodPut, "/items/5/report-status", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Invalid status value", func(t *testing.T) {
		s, m := newTestServer()
		app := newAuthedApp(3)
		app.Put("/items/:id/report-status", s.SetContentReportStatus)

		m.users.On("GetByID", mock.Anything, uint(3)).Return(&models.User{ID: 3, Role: models.RoleDeveloper}, nil)

		raw, _ := json.Marshal(map[string]string{"status": "wontfix"})
		req := httptest.NewRequest(http.MethodPut, "/items/5/report-status", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
