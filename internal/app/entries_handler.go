package app

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mini-time-tracker/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidJSON  = errors.New("invalid JSON body")
	errBodyTooLarge = errors.New("request body too large")
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

type entryHandler struct {
	log     *slog.Logger
	entries EntryService
}

func (h *entryHandler) list(c *gin.Context) {
	entries, err := h.entries.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *entryHandler) summary(c *gin.Context) {
	s, err := h.entries.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *entryHandler) create(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	cand, err := decodeCandidate(body)
	if err != nil {
		status, msg := http.StatusBadRequest, "Invalid JSON body"
		if errors.Is(err, errBodyTooLarge) {
			status, msg = http.StatusRequestEntityTooLarge, "Request body too large"
		}
		c.JSON(status, errorResponse{Message: msg})
		return
	}

	created, err := h.entries.Create(c.Request.Context(), cand)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// fail turns use case errors into responses. Rejections carry their own
// message; anything else is logged and reported generically.
func (h *entryHandler) fail(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		c.JSON(http.StatusBadRequest, errorResponse{Message: de.Message})
		return
	}
	h.log.Error("request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", c.GetString(requestIDHeader)),
	)
	c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

// decodeCandidate reads exactly one JSON value without assuming its shape.
// Anything other than an object yields a candidate with no fields, which the
// domain rejects as missing fields. Trailing data after the value is invalid.
func decodeCandidate(r io.Reader) (domain.Candidate, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Candidate{}, nil
		}
		return nil, decodeErr(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errInvalidJSON
		}
		return nil, decodeErr(err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.Candidate{}, nil
	}
	return domain.Candidate(obj), nil
}

func decodeErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return errInvalidJSON
}
