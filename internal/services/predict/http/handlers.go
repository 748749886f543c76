// Package http provides http transport for predict
package http

import (
	stdhttp "net/http"

	"textclf/internal/modkit/httpkit"
	"textclf/internal/services/predict/domain"
	svc "textclf/internal/services/predict/service"
)

// DefaultMaxBodyBytes caps the request body
const DefaultMaxBodyBytes int64 = 1 << 20

// Register mounts the predict endpoint on the given router
// unknown body fields are ignored, the body is capped at maxBody bytes
func Register(r httpkit.Router, s svc.Service, maxBody int64) {
	h := &handlers{svc: s}

	opts := httpkit.JSONOptions{MaxBytes: maxBody}
	httpkit.PostJSONWith[domain.PredictInput](r, "/", opts, h.predict)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /predict/ Predict predict
// @Summary Predict the class of one text
// @Tags Predict
// @Accept json
// @Produce json
// @Param payload body domain.PredictInput true "Text"
// @Success 200 {object} domain.PredictOutput "ok"
// @Router /predict/ [post]
func (h *handlers) predict(r *stdhttp.Request, in domain.PredictInput) (any, error) {
	out, err := h.svc.Predict(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(out), nil
}
