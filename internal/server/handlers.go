package server

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"math"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph"
	"github.com/voidshard/reliefgraph/internal/encoding"
)

const octetStream = "application/octet-stream"

type previewRequest struct {
	Width      int                `json:"width" validate:"gt=0,lte=8192"`
	Height     int                `json:"height" validate:"gt=0,lte=8192"`
	PixelScale float64            `json:"pixel_scale" validate:"gt=0,lte=64"`
	Selected   *int               `json:"selected,omitempty"`
	Nodes      []reliefgraph.Node `json:"nodes"`
}

type previewResponse struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Labels []float64 `json:"labels"`
}

type terrainRequest struct {
	Width  int                `json:"width" validate:"gt=0,lte=4096"`
	Height int                `json:"height" validate:"gt=0,lte=4096"`
	Params json.RawMessage    `json:"params,omitempty"`
	Nodes  []reliefgraph.Node `json:"nodes"`
}

// samplingLimits bounds the work a single terrain request can ask for
type samplingLimits struct {
	Samples   int `validate:"lte=500000"`
	EdgeNodes int `validate:"lte=4096"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// preview labels each pixel with its nearest node. Bad nodes give no labels
// rather than an error.
func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	req := &previewRequest{}
	if !s.decode(w, r, req) {
		return
	}

	labels := reliefgraph.PreviewLabels(req.Width, req.Height, req.PixelScale, req.Nodes)
	s.metrics.addPixels("preview", labels.Len())

	switch {
	case r.URL.Query().Get("format") == "png":
		if labels.Empty() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		// markers are placed in canvas units, which only line up with
		// whole pixel cells
		if req.PixelScale != math.Trunc(req.PixelScale) {
			s.respondError(w, r, errors.Wrapf(reliefgraph.ErrMalformedInput, "pixel_scale %v must be a whole number for png", req.PixelScale))
			return
		}
		selected := -1
		if req.Selected != nil {
			selected = *req.Selected
		}
		s.respondPNG(w, reliefgraph.PreviewImage(labels, req.Nodes, int(req.PixelScale), selected))
	case accepts(r, octetStream):
		respondBytes(w, encoding.FromFloat64s(labels.Float64s()))
	default:
		respondJSON(w, http.StatusOK, &previewResponse{Width: labels.W, Height: labels.H, Labels: labels.Float64s()})
	}
}

// terrain renders shaded relief
func (s *Server) terrain(w http.ResponseWriter, r *http.Request) {
	req := &terrainRequest{}
	if !s.decode(w, r, req) {
		return
	}

	params, err := s.samplingParams(req.Params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	img, err := s.gen.RenderTerrain(r.Context(), req.Width, req.Height, params, req.Nodes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.metrics.addPixels("terrain", req.Width*req.Height)

	if accepts(r, octetStream) {
		respondBytes(w, img.Pix)
		return
	}
	s.respondPNG(w, img)
}

// samplingParams reads the request's params over the configured defaults, so
// only the fields given are changed
func (s *Server) samplingParams(raw json.RawMessage) (reliefgraph.SamplingParams, error) {
	params := s.gen.Config().Sampling
	if len(raw) > 0 {
		err := json.Unmarshal(raw, &params)
		if err != nil {
			return params, errors.Wrap(reliefgraph.ErrMalformedInput, err.Error())
		}
	}
	err := s.validate.Struct(&samplingLimits{Samples: params.Samples, EdgeNodes: params.EdgeNodes})
	if err != nil {
		return params, errors.Wrap(reliefgraph.ErrMalformedInput, err.Error())
	}
	return params, nil
}

// decode reads & validates a JSON body, responding with an error if it can't
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, &errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	err = s.validate.Struct(v)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// statusFor maps errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, reliefgraph.ErrMalformedInput), errors.Is(err, reliefgraph.ErrNoNodes):
		return http.StatusBadRequest
	case errors.Is(err, reliefgraph.ErrModelConstruction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	respondJSON(w, status, &errorResponse{Error: err.Error()})
}

func (s *Server) respondPNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	err := png.Encode(w, img)
	if err != nil {
		s.log.Error("failed to encode png", zap.Error(err))
	}
}

func respondBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", octetStream)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// accepts returns if the request asks for the given media type
func accepts(r *http.Request, mediaType string) bool {
	return strings.Contains(r.Header.Get("Accept"), mediaType)
}
