package get_slot_catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	getSlotCatalog "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_slot_catalog"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getSlotCatalog.Request) (*getSlotCatalog.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getSlotCatalog.Response), args.Error(1)
}

func TestHandle_OK(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())

	slots := domain.GenerateCatalog("2026-10-20", []int{0}, domain.NewPriceTable(nil))
	uc.On("Execute", mock.Anything, &getSlotCatalog.Request{Date: "2026-10-20"}).Return(&getSlotCatalog.Response{
		Date:                  "2026-10-20",
		Slots:                 slots,
		Groups:                domain.GroupSlots(slots),
		AvailableCount:        17,
		AvailabilityConfirmed: true,
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2026-10-20", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, domain.SlotsPerDay)
	assert.Equal(t, "2026-10-20-07", resp.Slots[0].ID)
	assert.Equal(t, "₹800", resp.Slots[0].PriceLabel)
	assert.Equal(t, "booked", resp.Slots[17].Status)
	assert.Len(t, resp.Groups, 4)
	assert.True(t, resp.AvailabilityConfirmed)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{name: "missing date", url: "/api/v1/slots", status: http.StatusBadRequest},
		{name: "invalid date", url: "/api/v1/slots?date=x", err: getSlotCatalog.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "past date", url: "/api/v1/slots?date=2020-01-01", err: getSlotCatalog.ErrDateInPast, status: http.StatusBadRequest},
		{name: "internal", url: "/api/v1/slots?date=2026-10-20", err: getSlotCatalog.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewHandler(uc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
