package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/integrations/browserless"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// renderRequest is the body of POST /v1/pdf.
type renderRequest struct {
	Options *pdf.Settings `json:"options,omitempty"`
	HTML    string        `json:"html,omitempty"`
	URL     string        `json:"url,omitempty"`
}

func (req *renderRequest) target() (pdf.Target, error) {
	switch {
	case req.HTML != "" && req.URL != "":
		return pdf.Target{}, errs.New(errs.ErrCodeInvalidTarget, "set exactly one of html and url")
	case req.HTML != "":
		return pdf.HTML(req.HTML), nil
	case req.URL != "":
		if err := errs.ValidateURL(req.URL); err != nil {
			return pdf.Target{}, err
		}
		return pdf.URL(req.URL), nil
	default:
		return pdf.Target{}, pdf.ErrInvalidTarget
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req renderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, string(errs.ErrCodeInvalidInput),
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondError(w, r, http.StatusBadRequest, string(errs.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return
	}

	t, err := req.target()
	if err != nil {
		s.respondRenderError(w, r, err)
		return
	}
	if req.Options != nil {
		if err := req.Options.Validate(); err != nil {
			s.respondRenderError(w, r, err)
			return
		}
	}

	opts := req.Options.Apply(s.base.Clone())
	doc, err := s.renderer.Render(r.Context(), opts, t)
	if err != nil {
		s.respondRenderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.Header().Set("Content-Disposition", `inline; filename="document.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// respondRenderError maps err to a status and writes the error envelope.
func (s *Server) respondRenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	if status >= 500 {
		s.logger.Error("render failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
	}
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	respondError(w, r, status, string(code), msg)
}

// statusFor maps render errors to HTTP statuses. Client-side 4xx answers
// from the PDF service keep their status; anything else from upstream is a
// bad gateway.
func statusFor(err error) int {
	var apiErr *browserless.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}

	var encErr *pdf.EncodingError
	if errors.As(err, &encErr) {
		return http.StatusBadRequest
	}

	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidMargin, errs.ErrCodeInvalidTarget,
		errs.ErrCodeInvalidURL, errs.ErrCodeEncoding:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
