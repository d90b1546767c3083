package preview

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < 8; i++ {
		img.Set(i%4, i/4, color.RGBA{uint8(i * 30), 0, 255, 255})
	}
	return img
}

func TestServeFrameBeforeUpdate(t *testing.T) {
	s, err := NewServer("test")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No frame yet")
}

func TestServeFrame(t *testing.T) {
	s, err := NewServer("test")
	require.NoError(t, err)

	src := testImage()
	id, err := s.Update(src)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `"`+id+`"`, rec.Header().Get("ETag"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
	r, g, b, _ := img.At(3, 1).RGBA()
	assert.Equal(t, [3]uint32{210, 0, 255}, [3]uint32{r >> 8, g >> 8, b >> 8})

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "/frame.png?id="+id)
	assert.Contains(t, rec.Body.String(), `width="4"`)
}

func TestServeFrameNotModified(t *testing.T) {
	s, err := NewServer("test")
	require.NoError(t, err)

	id, err := s.Update(testImage())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/frame.png", nil)
	req.Header.Set("If-None-Match", `"`+id+`"`)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Zero(t, rec.Body.Len())

	next, err := s.Update(testImage())
	require.NoError(t, err)
	assert.NotEqual(t, id, next)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeNotFound(t *testing.T) {
	s, err := NewServer("test")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeShutdown(t *testing.T) {
	s, err := NewServer("test")
	require.NoError(t, err)
	_, err = s.Update(testImage())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "<!DOCTYPE html>"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
