package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"waypoint/internal/domain/entity"
	"waypoint/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubManual records calls and serves a fixed snapshot.
type stubManual struct {
	snapshot *usecase.ManualSnapshot

	modes   []entity.ManualMode
	clicks  []entity.LatLng
	removed []int
	resets  int
}

func (s *stubManual) Snapshot(ctx context.Context) *usecase.ManualSnapshot {
	if s.snapshot != nil {
		return s.snapshot
	}

	return &usecase.ManualSnapshot{Mode: entity.ManualNearest, Status: entity.RouteIdle}
}

func (s *stubManual) SetMode(ctx context.Context, mode entity.ManualMode) error {
	s.modes = append(s.modes, mode)

	return nil
}

func (s *stubManual) Click(ctx context.Context, point entity.LatLng) error {
	s.clicks = append(s.clicks, point)

	return nil
}

func (s *stubManual) RemovePoint(ctx context.Context, index int) error {
	s.removed = append(s.removed, index)

	return nil
}

func (s *stubManual) Reset(ctx context.Context) error {
	s.resets++

	return nil
}

func newManualHandler(manual usecase.ManualUsecase) *ManualHandler {
	return NewManualHandler(ManualHandlerParams{
		ManualUC: manual,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestManualHandler_SetMode(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodPost, "/manual/mode", `{"mode":"custom"}`)
	require.NoError(t, handler.SetMode(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []entity.ManualMode{entity.ManualCustom}, manual.modes)
}

func TestManualHandler_SetMode_Invalid(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodPost, "/manual/mode", `{"mode":"teleport"}`)
	require.NoError(t, handler.SetMode(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, manual.modes)
}

func TestManualHandler_Click(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodPost, "/manual/click", `{"latitude":10.04,"longitude":105.77}`)
	require.NoError(t, handler.Click(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, manual.clicks, 1)
	assert.Equal(t, entity.LatLng{Lat: 10.04, Lng: 105.77}, manual.clicks[0])
}

func TestManualHandler_Click_OutOfRange(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodPost, "/manual/click", `{"latitude":123.0,"longitude":105.77}`)
	require.NoError(t, handler.Click(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, manual.clicks)
}

func TestManualHandler_RemovePoint(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodDelete, "/manual/points/1", "")
	c.SetParamNames("index")
	c.SetParamValues("1")
	require.NoError(t, handler.RemovePoint(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{1}, manual.removed)
}

func TestManualHandler_RemovePoint_BadIndex(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodDelete, "/manual/points/first", "")
	c.SetParamNames("index")
	c.SetParamValues("first")
	require.NoError(t, handler.RemovePoint(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INDEX")
	assert.Empty(t, manual.removed)
}

func TestManualHandler_Reset(t *testing.T) {
	manual := &stubManual{}
	handler := newManualHandler(manual)

	c, rec := newPlanContext(http.MethodDelete, "/manual", "")
	require.NoError(t, handler.Reset(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, manual.resets)
}
