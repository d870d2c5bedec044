// Package server is the HTTP front end: a single endpoint that accepts a
// DOCX upload and responds with the reformatted document.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/gost-tools/gostdoc"
	"github.com/gost-tools/gostdoc/config"
	"github.com/gost-tools/gostdoc/format"
	"github.com/gost-tools/gostdoc/style"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Server serves the formatting API.
type Server struct {
	cfg    config.Server
	style  style.Config
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the server and its routes.
func New(cfg config.Server, styleCfg style.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = cfg.MaxUploadMB << 20

	s := &Server{cfg: cfg, style: styleCfg, log: log, engine: engine}
	engine.GET("/healthz", s.health)
	engine.POST("/format", s.format)
	return s
}

// Run serves until the context is canceled. The listener is capped at the
// configured connection limit; excess connections queue in the kernel
// backlog instead of exhausting file descriptors.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	ln = netutil.LimitListener(ln, s.cfg.MaxConnections)

	srv := &http.Server{Handler: s.engine}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("shutdown", zap.Error(err))
		}
	}()

	s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// format accepts a multipart upload under the "document" field and responds
// with the reformatted DOCX. Formatting failures are reported as 422: the
// upload was received but could not be processed.
func (s *Server) format(c *gin.Context) {
	fh, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field \"document\""})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".docx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .docx files are supported"})
		return
	}
	if fh.Size > s.cfg.MaxUploadMB<<20 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxUploadMB),
		})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	if detected := format.Sniff(data); detected != format.DOCX {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("upload is not a .docx document (detected %s)", detected),
		})
		return
	}

	log := s.log.With(zap.String("file", fh.Filename))
	out, stats, err := gostdoc.FromBytes(data).
		WithConfig(s.style).
		WithLogger(log).
		Bytes()
	if err != nil {
		log.Error("formatting document", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "document could not be formatted"})
		return
	}

	log.Info("document formatted",
		zap.Int("figures", stats.Figures),
		zap.Int("tables", stats.Tables))

	name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + "_gost.docx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("X-Figures", strconv.Itoa(stats.Figures))
	c.Header("X-Tables", strconv.Itoa(stats.Tables))
	c.Data(http.StatusOK, docxContentType, out)
}
