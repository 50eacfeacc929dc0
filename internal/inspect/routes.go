package inspect

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/folkways/internal/observability"
	"github.com/danmuck/folkways/internal/protocol"
	"github.com/danmuck/folkways/internal/protocol/frame"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
)

const octetStream = "application/octet-stream"

func (s *Service) registerRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.startedAt).String(),
			"service": s.cfg.ID,
			"version": serviceVersion,
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		status := http.StatusOK
		if !s.ready.Load() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ready":   s.ready.Load(),
			"service": s.cfg.ID,
			"version": serviceVersion,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/types", s.handleTypes)
	v1.POST("/encode", s.handleEncode)
	v1.POST("/decode", s.handleDecode)
}

func (s *Service) handleTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types": lo.Map(protocol.AllMessageTypes(), func(mt protocol.MessageType, _ int) TypeView {
			return NewTypeView(mt)
		}),
	})
}

func (s *Service) handleEncode(c *gin.Context) {
	var req EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Join(ErrInvalidRequest, err))
		return
	}
	msg, err := req.Build()
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := msg.Validate(); err != nil {
		observability.RecordCodec(s.cfg.ID, observability.DirectionEncode, msg, 0, err)
		s.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := frame.WriteMessage(&buf, msg, s.cfg.Limits()); err != nil {
		observability.RecordCodec(s.cfg.ID, observability.DirectionEncode, msg, 0, err)
		s.fail(c, err)
		return
	}
	observability.RecordCodec(s.cfg.ID, observability.DirectionEncode, msg, buf.Len(), nil)

	if strings.Contains(c.GetHeader("Accept"), octetStream) {
		c.Data(http.StatusOK, octetStream, buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, EncodeResponse{
		Hex:  encodeHex(buf.Bytes()),
		Size: buf.Len(),
		View: NewView(msg),
	})
}

func (s *Service) handleDecode(c *gin.Context) {
	raw, err := s.readWire(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	msgs, err := frame.DecodeAll(raw, s.cfg.Limits())
	if err != nil {
		observability.RecordCodec(s.cfg.ID, observability.DirectionDecode, nil, 0, err)
		s.fail(c, err)
		return
	}
	views := make([]MessageView, 0, len(msgs))
	for _, msg := range msgs {
		observability.RecordCodec(s.cfg.ID, observability.DirectionDecode, msg, protocol.MessageLen(msg.Header), nil)
		views = append(views, NewView(msg))
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// readWire returns the request's wire bytes: the raw body for octet-stream
// requests, otherwise the hex field of a JSON DecodeRequest.
func (s *Service) readWire(c *gin.Context) ([]byte, error) {
	if c.ContentType() == octetStream {
		limit := int64(protocol.HeaderSize) + int64(s.cfg.MaxBodyBytes) + int64(s.cfg.MaxFooterBytes)
		// allow several back-to-back messages per request
		body := http.MaxBytesReader(c.Writer, c.Request.Body, 16*limit)
		raw, err := io.ReadAll(body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, frame.ErrBodyTooLarge
			}
			return nil, errors.Join(ErrInvalidRequest, err)
		}
		if len(raw) == 0 {
			return nil, errors.Join(ErrInvalidRequest, errors.New("empty body"))
		}
		return raw, nil
	}

	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	return DecodeHex(req.Hex)
}

func (s *Service) fail(c *gin.Context, err error) {
	status := statusFor(err)
	kind := protocol.KindOf(err)
	if errors.Is(err, ErrInvalidRequest) {
		kind = "invalid_request"
	} else if errors.Is(err, frame.ErrBodyTooLarge) || errors.Is(err, frame.ErrFooterTooLarge) {
		kind = "too_large"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, frame.ErrBodyTooLarge), errors.Is(err, frame.ErrFooterTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, protocol.ErrProtocol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
