package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneParams
	Samples      int  `json:"samples"`      // Samples per pixel
	MaxDepth     int  `json:"maxDepth"`     // Maximum bounces per path
	PreviewEvery int  `json:"previewEvery"` // Tiles between preview events
	TileSize     int  `json:"tileSize"`     // Tile edge length
	Iterative    bool `json:"iterative"`    // Use the iterative estimator
}

// PreviewUpdate is sent via SSE while the render is in progress
type PreviewUpdate struct {
	TilesCompleted int    `json:"tilesCompleted"`
	TotalTiles     int    `json:"totalTiles"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs      int64  `json:"elapsedMs"`
}

// CompleteUpdate is the final SSE event of a successful render
type CompleteUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	PrimitiveCount   int     `json:"primitiveCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "preview", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or plain message
}

// handleRender renders a scene, streaming previews and console output via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Only the writer goroutine touches w; wait for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Console messages flow through their own goroutine until the render is over
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	complete, err := s.render(ctx, req, webLogger, sseEventChan)

	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	s.sendEvent(ctx, sseEventChan, "complete", complete)
}

// render runs the raytracer for req, sending preview events as tiles complete
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger, sseEventChan chan SSEEvent) (CompleteUpdate, error) {
	sceneObj, err := scene.NewScene(req.Scene, req.Width, req.Height, req.Seed)
	if err != nil {
		return CompleteUpdate{}, err
	}

	sampling := sceneObj.SamplingConfig
	sampling.SamplesPerPixel = req.Samples
	sampling.MaxDepth = req.MaxDepth

	config := renderer.DefaultRenderConfig()
	config.TileSize = req.TileSize
	config.PreviewEvery = req.PreviewEvery
	config.Iterative = req.Iterative

	raytracer, err := renderer.NewRaytracer(sceneObj, sampling, config, logger)
	if err != nil {
		return CompleteUpdate{}, fmt.Errorf("render setup failed: %w", err)
	}

	startTime := time.Now()
	buffer, stats := raytracer.RenderWithPreview(ctx, config.PreviewEvery, func(p renderer.Preview) {
		imageData, err := imageToBase64PNG(renderer.ToImage(p.Pixels, p.Width, p.Height))
		if err != nil {
			log.Printf("Error encoding preview: %v", err)
			return
		}
		s.sendEvent(ctx, sseEventChan, "preview", PreviewUpdate{
			TilesCompleted: p.TilesCompleted,
			TotalTiles:     p.TotalTiles,
			ImageData:      imageData,
			ElapsedMs:      time.Since(startTime).Milliseconds(),
		})
	})

	imageData, err := imageToBase64PNG(renderer.ToImage(buffer, req.Width, req.Height))
	if err != nil {
		return CompleteUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return CompleteUpdate{
		ImageData:        imageData,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		SamplesPerSecond: stats.SamplesPerSecond(),
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
	}, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	params, err := parseSceneParams(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneParams: params, Iterative: values.Get("iterative") == "true"}

	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 50, 0, 500); err != nil {
		return nil, err
	}
	if req.PreviewEvery, err = parseIntParam(values, "previewEvery", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", 32, 4, 512); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			// Client disconnected; keep draining so the logger never fills up
		}
	}
}

// sendEvent marshals data and queues it as an SSE event
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(payload)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
