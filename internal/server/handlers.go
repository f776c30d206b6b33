package server

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"

	"github.com/retouchlab/retouch/internal/adjust"
	"github.com/retouchlab/retouch/internal/analyze"
	"github.com/retouchlab/retouch/internal/codec"
	"github.com/retouchlab/retouch/internal/operator"
)

// maxUploadBytes caps image uploads at 64 MiB.
const maxUploadBytes = 64 << 20

// stateResponse summarizes the session for the front-end.
type stateResponse struct {
	Loaded      bool               `json:"loaded"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	CanUndo     bool               `json:"canUndo"`
	CanRedo     bool               `json:"canRedo"`
	Adjustments adjust.Adjustments `json:"adjustments"`
}

func (s *Server) stateLocked() stateResponse {
	resp := stateResponse{
		Loaded:      s.doc.Loaded(),
		CanUndo:     s.doc.CanUndo(),
		CanRedo:     s.doc.CanRedo(),
		Adjustments: s.doc.Adjustments(),
	}
	if buf, err := s.doc.Current(); err == nil {
		resp.Width, resp.Height = buf.W, buf.H
	}
	return resp
}

// loadImage replaces the session's original with the uploaded file.
// The body is either a multipart form with an "image" field or the raw
// image bytes. A failed decode leaves the previous session untouched.
func (s *Server) loadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var reader io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr("missing image field"))
			return
		}
		defer file.Close()
		reader = file
	}

	buf, format, err := codec.Decode(reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.LoadOriginal(buf); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}
	s.dirty = false
	s.log.Infow("image loaded", "format", format, "width", buf.W, "height", buf.H)
	c.JSON(http.StatusOK, jsend.Success(s.stateLocked()))
}

// currentImage streams the composed preview as PNG. An optional maxw
// query downscales proportionally so large originals don't saturate
// the connection on every slider change. The response carries an ETag
// derived from the buffer fingerprint.
func (s *Server) currentImage(c *gin.Context) {
	s.mu.Lock()
	s.flushLocked()
	buf, err := s.doc.Current()
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr(err.Error()))
		return
	}

	if maxw, err := strconv.Atoi(c.Query("maxw")); err == nil && maxw > 0 && maxw < buf.W {
		h := buf.H * maxw / buf.W
		if h < 1 {
			h = 1
		}
		buf = operator.Resize(buf, maxw, h)
	}

	etag := fmt.Sprintf(`"%016x"`, buf.Fingerprint())
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	var out bytes.Buffer
	if err := png.Encode(&out, buf.NRGBA()); err != nil {
		c.JSON(http.StatusInternalServerError, jsend.SimpleErr(err.Error()))
		return
	}
	c.Header("ETag", etag)
	c.Data(http.StatusOK, "image/png", out.Bytes())
}

func (s *Server) state(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, jsend.Success(s.stateLocked()))
}

func (s *Server) adjustments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, jsend.Success(s.doc.Adjustments()))
}

// adjustRequest is one parameter change. Operator selects the variant;
// the other fields are read per operator. Multi-field operators must
// send every field (equalize: strength and mode) so a partial update
// can't silently reset the rest.
type adjustRequest struct {
	Operator string   `json:"operator" binding:"required"`
	Value    *int     `json:"value,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
	Sigma    *float64 `json:"sigma,omitempty"`
	R        *int     `json:"r,omitempty"`
	G        *int     `json:"g,omitempty"`
	B        *int     `json:"b,omitempty"`
	Strength *int     `json:"strength,omitempty"`
	Mode     string   `json:"mode,omitempty"`
}

// param maps the request onto a typed adjustment parameter, clamping
// slider values to their documented ranges. Range enforcement lives
// here, at the UI boundary; the core trusts its inputs.
func (r adjustRequest) param() (adjust.Param, error) {
	clamped := func(v *int, lo, hi int) (int, error) {
		if v == nil {
			return 0, fmt.Errorf("operator %q requires a value", r.Operator)
		}
		if *v < lo {
			return lo, nil
		}
		if *v > hi {
			return hi, nil
		}
		return *v, nil
	}
	enabled := func() (bool, error) {
		if r.Enabled == nil {
			return false, fmt.Errorf("operator %q requires enabled", r.Operator)
		}
		return *r.Enabled, nil
	}

	switch r.Operator {
	case "brightness":
		v, err := clamped(r.Value, -100, 100)
		return adjust.Brightness(v), err
	case "contrast":
		v, err := clamped(r.Value, -100, 100)
		return adjust.Contrast(v), err
	case "saturation":
		v, err := clamped(r.Value, -100, 100)
		return adjust.Saturation(v), err
	case "offset":
		if r.R == nil || r.G == nil || r.B == nil {
			return nil, fmt.Errorf("offset requires r, g and b")
		}
		rr, _ := clamped(r.R, -100, 100)
		gg, _ := clamped(r.G, -100, 100)
		bb, _ := clamped(r.B, -100, 100)
		return adjust.ChannelOffset{R: rr, G: gg, B: bb}, nil
	case "grayscale":
		v, err := enabled()
		return adjust.Grayscale(v), err
	case "invert":
		v, err := enabled()
		return adjust.Invert(v), err
	case "laplacian":
		v, err := enabled()
		return adjust.Laplacian(v), err
	case "boxblur":
		if r.Radius == nil {
			return nil, fmt.Errorf("boxblur requires radius")
		}
		rad := *r.Radius
		if rad < 0 {
			rad = 0
		}
		if rad > 10 {
			rad = 10
		}
		return adjust.BoxBlur(rad), nil
	case "sharpen":
		v, err := clamped(r.Value, 0, 100)
		return adjust.Sharpen(v), err
	case "median":
		v, err := clamped(r.Value, 0, 5)
		return adjust.Median(v), err
	case "gaussian":
		if r.Sigma == nil {
			return nil, fmt.Errorf("gaussian requires sigma")
		}
		sig := *r.Sigma
		if sig < 0 {
			sig = 0
		}
		if sig > 5 {
			sig = 5
		}
		return adjust.Gaussian(sig), nil
	case "equalize":
		if r.Strength == nil || r.Mode == "" {
			return nil, fmt.Errorf("equalize requires strength and mode")
		}
		strength, _ := clamped(r.Strength, 0, 100)
		mode, err := operator.ParseEqualizeMode(r.Mode)
		if err != nil {
			return nil, err
		}
		return adjust.Equalize{Strength: strength, Mode: mode}, nil
	case "edge":
		mode, err := operator.ParseEdgeMode(r.Mode)
		if err != nil {
			return nil, err
		}
		return adjust.Edge(mode), nil
	}
	return nil, fmt.Errorf("unknown operator: %q", r.Operator)
}

// applyAdjustment records a parameter change and schedules a debounced
// recomposition. The acknowledged state reflects the change even when
// the pixels haven't caught up yet.
func (s *Server) applyAdjustment(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}
	p, err := req.param()
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.Set(p); err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}
	s.scheduleRecompose()
	c.JSON(http.StatusOK, jsend.Success(s.doc.Adjustments()))
}

func (s *Server) histogramStats(c *gin.Context) {
	s.mu.Lock()
	s.flushLocked()
	stats, err := s.doc.Histogram()
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr(err.Error()))
		return
	}
	jsonData(c, http.StatusOK, jsend.Success(stats))
}

func (s *Server) palette(c *gin.Context) {
	count := 5
	if n, err := strconv.Atoi(c.Query("count")); err == nil && n > 0 && n <= 32 {
		count = n
	}

	s.mu.Lock()
	s.flushLocked()
	buf, err := s.doc.Current()
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr(err.Error()))
		return
	}
	jsonData(c, http.StatusOK, jsend.Success(analyze.Palette(buf, count)))
}

func (s *Server) bake(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	if err := s.doc.Bake(); err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}
	c.JSON(http.StatusOK, jsend.Success(s.stateLocked()))
}

// historyResponse reports whether the step applied plus the new
// boundary flags. A step at the boundary is a no-op, not an error.
type historyResponse struct {
	Applied bool `json:"applied"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

func (s *Server) undo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	applied := s.doc.Undo()
	c.JSON(http.StatusOK, jsend.Success(historyResponse{
		Applied: applied,
		CanUndo: s.doc.CanUndo(),
		CanRedo: s.doc.CanRedo(),
	}))
}

func (s *Server) redo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	applied := s.doc.Redo()
	c.JSON(http.StatusOK, jsend.Success(historyResponse{
		Applied: applied,
		CanUndo: s.doc.CanUndo(),
		CanRedo: s.doc.CanRedo(),
	}))
}

func (s *Server) reset(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.Reset(); err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}
	s.dirty = false
	c.JSON(http.StatusOK, jsend.Success(s.stateLocked()))
}

// geometryRequest selects a canvas transform. Crop additionally takes
// the region in canvas coordinates.
type geometryRequest struct {
	Op     string `json:"op" binding:"required"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (s *Server) geometry(c *gin.Context) {
	var req geometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()

	var err error
	switch req.Op {
	case "rotate90":
		err = s.doc.Rotate90()
	case "rotate180":
		err = s.doc.Rotate180()
	case "rotate270":
		err = s.doc.Rotate270()
	case "fliph":
		err = s.doc.FlipH()
	case "flipv":
		err = s.doc.FlipV()
	case "crop":
		if req.Width < 1 || req.Height < 1 {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr("crop requires width and height of at least 1"))
			return
		}
		err = s.doc.Crop(image.Rect(req.X, req.Y, req.X+req.Width, req.Y+req.Height))
	default:
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(fmt.Sprintf("unknown geometry op: %q", req.Op)))
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, jsend.SimpleErr(err.Error()))
		return
	}
	c.JSON(http.StatusOK, jsend.Success(s.stateLocked()))
}
