package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/labfab/lasercam"
	"github.com/labfab/lasercam/camera"
)

// Boundary separates frames of the MJPEG stream
const Boundary = "123456789000000000000987654321"

// Camera is what the server needs from an initialized capture session
type Camera interface {
	Frame() ([]byte, error)
	Config() camera.CaptureConfig
	SensorID() camera.SensorID
	LiveResolution() camera.Resolution
}

// Status is the JSON document served at /status
type Status struct {
	Resolution     string `json:"resolution"`
	LiveResolution string `json:"live_resolution"`
	PixelFormat    string `json:"pixel_format"`
	FrameBuffer    string `json:"frame_buffer"`
	FrameBuffers   int    `json:"frame_buffers"`
	JPEGQuality    int    `json:"jpeg_quality"`
	GrabMode       string `json:"grab_mode"`
	Sensor         string `json:"sensor"`
}

// Server serves the frames of a Camera over HTTP
type Server struct {
	cam    Camera
	router chi.Router
	log    lasercam.Logger
}

// NewServer creates the routes for cam
func NewServer(cam Camera, logger lasercam.Logger) *Server {
	if logger == nil {
		logger = lasercam.Discard
	}

	s := &Server{cam: cam, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.index)
	r.Get("/stream", s.stream)
	r.Get("/capture", s.capture)
	r.Get("/status", s.status)
	s.router = r

	return s
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and serves in the background until ctx is done. It returns the bound address so
// a ":0" port can be reported
func (s *Server) Start(ctx context.Context, addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error listening on %q: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Println("error serving stream: " + err.Error())
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return ln.Addr(), nil
}

const indexPage = `<!doctype html>
<html>
<head><title>lasercam</title></head>
<body style="margin:0;background:#000">
<img src="/stream" style="display:block;margin:auto;max-width:100%">
</body>
</html>
`

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(Boundary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace;boundary="+Boundary)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := s.cam.Frame()
		if err != nil {
			s.log.Println("error capturing frame: " + err.Error())
			return
		}

		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":   {"image/jpeg"},
			"Content-Length": {strconv.Itoa(len(frame))},
		})
		if err != nil {
			return
		}
		if _, err := part.Write(frame); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) capture(w http.ResponseWriter, r *http.Request) {
	frame, err := s.cam.Frame()
	if err != nil {
		s.log.Println("error capturing frame: " + err.Error())
		http.Error(w, "capture failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition", "inline; filename=capture.jpg")
	w.Header().Set("Content-Length", strconv.Itoa(len(frame)))
	_, _ = w.Write(frame)
}

// StatusOf describes cam
func StatusOf(cam Camera) Status {
	cfg := cam.Config()
	return Status{
		Resolution:     cfg.Resolution.String(),
		LiveResolution: cam.LiveResolution().String(),
		PixelFormat:    cfg.PixelFormat.String(),
		FrameBuffer:    cfg.FrameBuffer.String(),
		FrameBuffers:   cfg.FrameBufferCount,
		JPEGQuality:    cfg.JPEGQuality,
		GrabMode:       cfg.GrabMode.String(),
		Sensor:         cam.SensorID().String(),
	}
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(StatusOf(s.cam))
}
