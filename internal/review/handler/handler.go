// Package handler exposes the registration update endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"emend/internal/device"
	"emend/internal/review/models"
	"emend/internal/review/service"
	"emend/pkg/platform/httputil"
	"emend/pkg/requestcontext"
)

// UpdateService runs the review pipeline for one request.
type UpdateService interface {
	Update(ctx context.Context, input service.UpdateInput) error
}

type Handler struct {
	service UpdateService
	logger  *slog.Logger
}

func New(svc UpdateService, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Routes mounts the handler's endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Put("/registration", h.UpdateRegistration)
}

// UpdateRegistration handles PUT /registration: the authenticated account
// amends its stored KYC data.
func (h *Handler) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	uniqueID, err := httputil.RequireUniqueID(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	descriptor, err := device.Decode(r.Header.Get("X-Device-Token"), r.UserAgent())
	if err != nil {
		h.logger.WarnContext(ctx, "rejected device token",
			"error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	input := service.UpdateInput{
		UniqueID: uniqueID,
		Token:    bearerToken(r),
		Device:   descriptor,
		Request:  req,
	}
	if err := h.service.Update(ctx, input); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Code:    "updated",
		Message: "registration data updated",
	})
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
