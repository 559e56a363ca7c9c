package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	handlers "servicapp/internal/handler"
	"servicapp/internal/models"
	"servicapp/internal/repository"
	"servicapp/internal/service"
)

func TestApplyDuplicateReturnsConflict(t *testing.T) {
	h, m := newTestHandlers()

	m.Application.On("Apply", mock.Anything, "p1", "w1", mock.Anything).
		Return(nil, repository.ErrDuplicateApplication)

	req := authedRequest(t, http.MethodPost, "/api/posts/p1/applications", handlers.ApplyRequest{
		Message: "hola",
	}, "w1", models.UserTypeWorker)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRespondAcceptIncludesProjectAndRejected(t *testing.T) {
	h, m := newTestHandlers()

	m.Application.On("Respond", mock.Anything, "a1", "c1", service.RespondAccept).
		Return(&repository.AcceptResult{
			Application: models.PostApplication{ApplicationID: "a1", Status: models.ApplicationAccepted},
			Post:        models.Post{PostID: "p1", Status: models.PostInProgress},
			Project:     models.ActiveProject{ProjectID: "pr1", Status: models.ProjectAssigned},
			Rejected: []models.PostApplication{
				{ApplicationID: "a2", Status: models.ApplicationRejected},
			},
		}, nil)

	req := authedRequest(t, http.MethodPost, "/api/applications/a1/respond", handlers.RespondRequest{
		Action: "accept",
	}, "c1", models.UserTypeContractor)
	req = mux.SetURLVars(req, map[string]string{"id": "a1"})
	rec := httptest.NewRecorder()

	h.Respond(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.RespondResponse
	decodeBody(t, rec, &resp)
	assert.NotNil(t, resp.Project)
	assert.Equal(t, "pr1", resp.Project.ProjectID)
	assert.Len(t, resp.Rejected, 1)
}

func TestRespondRejectOmitsProject(t *testing.T) {
	h, m := newTestHandlers()

	m.Application.On("Respond", mock.Anything, "a1", "c1", service.RespondReject).
		Return(&repository.AcceptResult{
			Application: models.PostApplication{ApplicationID: "a1", Status: models.ApplicationRejected},
			Post:        models.Post{PostID: "p1", Status: models.PostOpen},
		}, nil)

	req := authedRequest(t, http.MethodPost, "/api/applications/a1/respond", handlers.RespondRequest{
		Action: "reject",
	}, "c1", models.UserTypeContractor)
	req = mux.SetURLVars(req, map[string]string{"id": "a1"})
	rec := httptest.NewRecorder()

	h.Respond(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.RespondResponse
	decodeBody(t, rec, &resp)
	assert.Nil(t, resp.Project)
}

func TestRespondAlreadyResolvedConflict(t *testing.T) {
	h, m := newTestHandlers()

	m.Application.On("Respond", mock.Anything, "a1", "c1", service.RespondAccept).
		Return(nil, repository.ErrApplicationResolved)

	req := authedRequest(t, http.MethodPost, "/api/applications/a1/respond", handlers.RespondRequest{
		Action: "accept",
	}, "c1", models.UserTypeContractor)
	req = mux.SetURLVars(req, map[string]string{"id": "a1"})
	rec := httptest.NewRecorder()

	h.Respond(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRespondInvalidAction(t *testing.T) {
	h, _ := newTestHandlers()

	req := authedRequest(t, http.MethodPost, "/api/applications/a1/respond", handlers.RespondRequest{
		Action: "maybe",
	}, "c1", models.UserTypeContractor)
	req = mux.SetURLVars(req, map[string]string{"id": "a1"})
	rec := httptest.NewRecorder()

	h.Respond(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListApplicationsForbiddenForStranger(t *testing.T) {
	h, m := newTestHandlers()

	m.Application.On("ListForPost", mock.Anything, "p1", "intruso").
		Return(nil, service.ErrForbidden)

	req := authedRequest(t, http.MethodGet, "/api/posts/p1/applications", nil, "intruso", models.UserTypeContractor)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})
	rec := httptest.NewRecorder()

	h.ListApplications(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
