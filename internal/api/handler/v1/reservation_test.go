package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
	"github.com/oaktheatre/boxoffice/internal/service"
)

type stubReservationService struct {
	created     domain.Reservation
	createErr   error
	found       domain.Reservation
	findErr     error
	lastCreate  service.CreateReservationInput
	lastCode    string
	lastEmail   string
	cancelErr   error
	cancelledAs domain.Reservation
}

func (s *stubReservationService) Create(_ context.Context, input service.CreateReservationInput) (domain.Reservation, error) {
	s.lastCreate = input
	return s.created, s.createErr
}

func (s *stubReservationService) FindByCode(_ context.Context, code string) (domain.Reservation, error) {
	s.lastCode = code
	return s.found, s.findErr
}

func (s *stubReservationService) Find(_ context.Context, _ repository.ReservationFilter) ([]domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservationService) Update(_ context.Context, _ string, _ service.UpdateReservationInput) (domain.Reservation, error) {
	return s.found, s.findErr
}

func (s *stubReservationService) Collect(_ context.Context, _ string) (domain.Reservation, error) {
	return s.found, s.findErr
}

func (s *stubReservationService) CancelByCustomer(_ context.Context, code, email string) (domain.Reservation, error) {
	s.lastCode = code
	s.lastEmail = email
	return s.cancelledAs, s.cancelErr
}

func (s *stubReservationService) CancelByAdmin(_ context.Context, _ string, _ *string) (domain.Reservation, error) {
	return s.found, s.findErr
}

func (s *stubReservationService) Reinstate(_ context.Context, _ string) (domain.Reservation, error) {
	return s.found, s.findErr
}

func (s *stubReservationService) MarkNoShow(_ context.Context, _ string) (domain.Reservation, error) {
	return s.found, s.findErr
}

func (s *stubReservationService) ExpireOverdue(_ context.Context) (int64, error) {
	return 0, nil
}

func (s *stubReservationService) Summary(_ context.Context, _ uint) (domain.PerformanceSummary, error) {
	return domain.PerformanceSummary{}, nil
}

func newReservationTestRouter(svc ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewReservationHandler(svc)
	router.POST("/reservations", handler.HandleCreateReservation)
	router.GET("/reservations/:code", handler.HandleGetReservation)
	router.PUT("/reservations/:code/cancel", handler.HandleCancelReservation)

	return router
}

func TestHandleCreateReservation(t *testing.T) {
	svc := &stubReservationService{
		created: domain.Reservation{
			ID:              1,
			ReservationCode: "ABCDEFGHJKMNPQRSTUVWXYZ2",
			Status:          domain.ReservationPendingCollection,
			TotalPrice:      30,
		},
	}
	router := newReservationTestRouter(svc)

	body := `{
		"performance_id": 7,
		"customer_name": "Ada Lovelace",
		"customer_email": "ada@example.com",
		"tickets": [{"ticket_type_id": 1, "quantity": 2}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, uint(7), svc.lastCreate.PerformanceID)
	assert.False(t, svc.lastCreate.WalkUp)
	require.Len(t, svc.lastCreate.Tickets, 1)
	assert.Equal(t, 2, svc.lastCreate.Tickets[0].Quantity)

	var got domain.Reservation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "ABCDEFGHJKMNPQRSTUVWXYZ2", got.ReservationCode)
}

func TestHandleCreateReservationValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "missing tickets",
			body: `{"performance_id": 7, "customer_name": "Ada", "customer_email": "ada@example.com"}`,
		},
		{
			name: "zero quantity",
			body: `{"performance_id": 7, "customer_name": "Ada", "customer_email": "ada@example.com", "tickets": [{"ticket_type_id": 1, "quantity": 0}]}`,
		},
		{
			name: "bad email",
			body: `{"performance_id": 7, "customer_name": "Ada", "customer_email": "nope", "tickets": [{"ticket_type_id": 1, "quantity": 1}]}`,
		},
		{
			name: "no performance",
			body: `{"customer_name": "Ada", "customer_email": "ada@example.com", "tickets": [{"ticket_type_id": 1, "quantity": 1}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubReservationService{}
			router := newReservationTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(tc.body))
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestHandleCreateReservationErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "capacity conflict",
			err:      service.ErrNotEnoughCapacity,
			wantCode: http.StatusConflict,
		},
		{
			name:     "reservations closed",
			err:      service.ErrReservationsClosed,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "performance started",
			err:      service.ErrPerformanceStarted,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown performance",
			err:      service.ErrPerformanceNotFound,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "externally sold performance",
			err:      service.ErrExternalBooking,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no price configured",
			err:      service.ErrNoPriceConfigured,
			wantCode: http.StatusBadRequest,
		},
	}

	body := `{
		"performance_id": 7,
		"customer_name": "Ada Lovelace",
		"customer_email": "ada@example.com",
		"tickets": [{"ticket_type_id": 1, "quantity": 2}]
	}`

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubReservationService{createErr: tc.err}
			router := newReservationTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(body))
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}

func TestHandleGetReservation(t *testing.T) {
	svc := &stubReservationService{
		found: domain.Reservation{ID: 1, ReservationCode: "SOMECODEAAAA2222BBBB3333"},
	}
	router := newReservationTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reservations/SOMECODEAAAA2222BBBB3333", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "SOMECODEAAAA2222BBBB3333", svc.lastCode)
}

func TestHandleGetReservationNotFound(t *testing.T) {
	svc := &stubReservationService{findErr: service.ErrReservationNotFound}
	router := newReservationTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reservations/NOPE", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleCancelReservation(t *testing.T) {
	svc := &stubReservationService{
		cancelledAs: domain.Reservation{ID: 1, Status: domain.ReservationCancelledByCustomer},
	}
	router := newReservationTestRouter(svc)

	body := `{"customer_email": "ada@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/reservations/SOMECODE/cancel", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ada@example.com", svc.lastEmail)
}

func TestHandleCancelReservationWrongOwner(t *testing.T) {
	svc := &stubReservationService{cancelErr: service.ErrNotReservationOwner}
	router := newReservationTestRouter(svc)

	body := `{"customer_email": "someone@else.com"}`
	req := httptest.NewRequest(http.MethodPut, "/reservations/SOMECODE/cancel", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
