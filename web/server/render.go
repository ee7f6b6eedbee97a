package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
)

const (
	defaultSamples = 50
	maxGamma       = 5.0
	consoleBuffer  = 256
)

// RenderRequest holds the parameters of a render
type RenderRequest struct {
	SceneRequest
	Samples int            `json:"samples"`
	Jitter  bool           `json:"jitter"`
	Seed    int64          `json:"seed"`
	Gamma   float32        `json:"gamma"`
	Format  imaging.Format `json:"-"`
}

// RenderResponse is the body of /api/render-json
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 PNG
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Stats     RenderStatsJSON  `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// RenderStatsJSON is the JSON form of renderer.RenderStats
type RenderStatsJSON struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MeanVariance   float64 `json:"meanVariance"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// parseRenderRequest parses the render parameters on top of the scene parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	sceneReq, err := parseSceneRequest(r)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: *sceneReq, Jitter: true, Seed: 42}
	query := r.URL.Query()

	if req.Samples, err = parseIntParam(query, "samples", defaultSamples, minSamples, maxSamples); err != nil {
		return nil, err
	}

	if value := query.Get("jitter"); value != "" {
		if req.Jitter, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid jitter: %s", value)
		}
	}

	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	gamma, err := parseFloatParam(query, "gamma", output.DefaultGamma, 0, maxGamma)
	if err != nil {
		return nil, err
	}
	req.Gamma = float32(gamma)

	req.Format = imaging.PNG
	if value := query.Get("format"); value != "" {
		if req.Format, err = output.FormatFromFilename("render." + value); err != nil {
			return nil, fmt.Errorf("invalid format: %s", value)
		}
	}
	return req, nil
}

// render builds the scene and renders it, logging through logger
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger) (*renderer.Image, renderer.RenderStats, error) {
	sceneObj, err := s.createScene(&req.SceneRequest)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	config := renderer.DefaultSamplingConfig()
	config.SamplesPerPixel = req.Samples
	config.Jitter = req.Jitter
	config.Seed = req.Seed

	r, err := renderer.NewRenderer(sceneObj, req.Width, req.Height, config, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return r.Render(ctx)
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger := NewWebLogger(newRenderID(), nil)
	img, _, err := s.render(r.Context(), req, logger)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := output.Encode(w, img, req.Gamma, req.Format); err != nil {
		logger.Printf("failed to encode image: %v", err)
	}
}

// handleRenderJSON renders a scene and responds with a base64 PNG, stats and console output
func (s *Server) handleRenderJSON(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	img, stats, err := s.render(r.Context(), req, NewWebLogger(newRenderID(), consoleChan))
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	imageData, err := imageToBase64PNG(img, req.Gamma)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: imageData,
		Width:     img.Width,
		Height:    img.Height,
		Stats: RenderStatsJSON{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
			MeanVariance:   stats.MeanVariance,
			ElapsedMs:      stats.Elapsed.Milliseconds(),
		},
		Console: drainConsole(consoleChan),
	})
}

// imageToBase64PNG converts an image to a base64-encoded PNG string
func imageToBase64PNG(img *renderer.Image, gamma float32) (string, error) {
	data, err := output.EncodeBytes(output.ToNRGBA(img, gamma), imaging.PNG)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
