package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/steviee/mcskin/internal/mojang"
)

// SkinResponse is the JSON body of a successful resolution.
type SkinResponse struct {
	ID          string `json:"id"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	SkinURL     string `json:"skin_url"`
	DefaultSkin bool   `json:"default_skin"`
	CapeURL     string `json:"cape_url,omitempty"`
	Model       string `json:"model"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewSkinResponse flattens a resolution for API and CLI output.
func NewSkinResponse(res *mojang.Resolution) SkinResponse {
	return SkinResponse{
		ID:          res.Identity.ID,
		UUID:        mojang.FormatUUID(res.Identity.ID),
		Name:        res.Identity.Name,
		SkinURL:     res.EffectiveSkinURL(),
		DefaultSkin: res.SkinURL() == "",
		CapeURL:     res.CapeURL(),
		Model:       res.Model(),
	}
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*mojang.Resolution, bool) {
	username := chi.URLParam(r, "username")

	ctx := r.Context()
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	res, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		status := statusFor(err)
		s.logger.Debug("resolution request failed",
			"username", username,
			"status", status,
			"error", err,
			"request_id", chimw.GetReqID(r.Context()))
		writeJSON(w, status, ErrorResponse{
			Error: err.Error(),
			Kind:  mojang.Kind(err).String(),
		})
		return nil, false
	}

	return res, true
}

func (s *Server) handleResolution(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewSkinResponse(res))
}

func (s *Server) handleSkinRedirect(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, res.EffectiveSkinURL(), http.StatusFound)
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res.Profile.Properties)
}

// statusFor maps a resolution error to an HTTP status code.
func statusFor(err error) int {
	if mojang.IsCanceled(err) {
		return http.StatusGatewayTimeout
	}

	switch mojang.Kind(err) {
	case mojang.KindInvalidInput:
		return http.StatusBadRequest
	case mojang.KindNotFound:
		return http.StatusNotFound
	case mojang.KindTransport, mojang.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
