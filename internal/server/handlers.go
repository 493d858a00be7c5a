package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/optio/pkg/buildinfo"
	"github.com/matzehuels/optio/pkg/errors"
	"github.com/matzehuels/optio/pkg/pipeline"
)

type encryptRequest struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type encryptResponse struct {
	Ciphertext string `json:"ciphertext"`
}

type decryptRequest struct {
	Key        string `json:"key"`
	Ciphertext string `json:"ciphertext"`
}

type decryptResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) encrypt(w http.ResponseWriter, r *http.Request) {
	var req encryptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	res, err := s.runner.Encrypt(r.Context(), pipeline.Options{Key: req.Key, Input: req.Message})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, encryptResponse{Ciphertext: res.Output})
}

func (s *Server) decrypt(w http.ResponseWriter, r *http.Request) {
	var req decryptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	res, err := s.runner.Decrypt(r.Context(), pipeline.Options{Key: req.Key, Input: req.Ciphertext})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decryptResponse{Message: res.Output})
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	rl := &errors.RateLimitedError{RetryAfter: 60}
	if reset, err := strconv.Atoi(w.Header().Get("X-RateLimit-Reset")); err == nil {
		rl.RetryAfter = max(1, reset-int(time.Now().Unix()))
	}
	w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	writeError(w, http.StatusTooManyRequests, rl.Code(), rl.Error())
}

// decodeJSON reads exactly one JSON object from the body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInputTooLarge, "request body too large (max %d bytes)", MaxBodyBytes)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New(errors.ErrCodeInvalidInput, "unexpected trailing data")
	}
	return nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeDecodeFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidKey,
		errors.ErrCodeInvalidEncoding,
		errors.ErrCodeInputTooLarge,
		errors.ErrCodeInvalidTransform:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if code == errors.ErrCodeInternal {
		msg = "internal error"
	}
	writeError(w, statusFor(code), code, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
