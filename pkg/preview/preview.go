// Package preview displays converted frames in a browser. It is the display
// surface of the converter: a tiny HTTP server holding the latest frame.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"image"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pion/logging"

	mlogging "github.com/pion/rawframe/internal/logging"
	"github.com/pion/rawframe/pkg/codec"
	_ "github.com/pion/rawframe/pkg/codec/png" // This is required to register the png encoder
)

const shutdownTimeout = 5 * time.Second

var errNoFrame = errors.New("preview: no frame yet")

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body style="margin:0;background:#111">
{{if .ID}}<img src="/frame.png?id={{.ID}}" alt="{{.Title}}" width="{{.Width}}" height="{{.Height}}">{{else}}<p style="color:#eee">No frame yet.</p>{{end}}
</body>
</html>
`))

// Server serves the latest frame as PNG on /frame.png and an HTML page
// showing it on /.
type Server struct {
	title   string
	encoder codec.ImageEncoder
	log     logging.LeveledLogger

	mu     sync.RWMutex
	id     string
	png    []byte
	bounds image.Rectangle
}

// NewServer creates a server without a frame. title is shown by the browser.
func NewServer(title string) (*Server, error) {
	enc, err := codec.BuildImageEncoder("png", codec.ImageSetting{})
	if err != nil {
		return nil, err
	}
	return &Server{
		title:   title,
		encoder: enc,
		log:     mlogging.NewLogger("preview"),
	}, nil
}

// Update encodes img and makes it the frame being served. It returns the id
// of the new frame, which is also its ETag.
func (s *Server) Update(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, img); err != nil {
		return "", err
	}
	id := uuid.New().String()

	s.mu.Lock()
	s.id = id
	s.png = buf.Bytes()
	s.bounds = img.Bounds()
	s.mu.Unlock()

	s.log.Debugf("frame %s: %d bytes", id, buf.Len())
	return id, nil
}

func (s *Server) frame() (id string, b []byte, bounds image.Rectangle, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.png == nil {
		return "", nil, image.Rectangle{}, errNoFrame
	}
	return s.id, s.png, s.bounds, nil
}

// Handler returns the http.Handler of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/frame.png", s.serveFrame)
	return mux
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	id, _, bounds, _ := s.frame()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := page.Execute(w, struct {
		Title         string
		ID            string
		Width, Height int
	}{s.title, id, bounds.Dx(), bounds.Dy()})
	if err != nil {
		s.log.Errorf("failed to render page: %v", err)
	}
}

func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	id, b, _, err := s.frame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	etag := `"` + id + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(len(b)))
	if _, err := w.Write(b); err != nil {
		s.log.Debugf("failed to write frame %s: %v", id, err)
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	s.log.Infof("listening on http://%s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
