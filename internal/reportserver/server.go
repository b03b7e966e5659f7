// Package reportserver serves the generated artifacts over HTTP for quick
// inspection. It is read-only; runs are still started from the CLI.
package reportserver

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/config"
)

var Module = fx.Module("reportserver",
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)

type artifactInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	outputDir := cfg.Pipeline.OutputDir
	serverLog := log.Named("reportserver")

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/artifacts", func(c *gin.Context) {
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			serverLog.Warn("cannot read output dir", zap.Error(err))
			c.JSON(http.StatusOK, []artifactInfo{})
			return
		}
		artifacts := make([]artifactInfo, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".html") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			artifacts = append(artifacts, artifactInfo{
				Name:     name,
				Size:     info.Size(),
				Modified: info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Modified > artifacts[j].Modified })
		c.JSON(http.StatusOK, artifacts)
	})

	r.GET("/artifacts/:name", func(c *gin.Context) {
		name := filepath.Base(c.Param("name"))
		path := filepath.Join(outputDir, name)
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.File(path)
	})

	return r
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":8081",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("report server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
