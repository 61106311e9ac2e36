package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SarthakNawali/ai-word-generator/internal/logger"
	"github.com/SarthakNawali/ai-word-generator/internal/webui"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form and job API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	server := webui.NewServer(pipeline)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening on http://127.0.0.1:%d", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
