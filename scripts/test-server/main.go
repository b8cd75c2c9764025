// Command test-server serves the JSON fixtures used by the tests so the CLI
// can be tried by hand:
//
//	go run ./scripts/test-server -addr :8080
//	simplenet get http://localhost:8080/items -p q=shoes
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wesleyorama2/simplenet/internal/logger"
	"github.com/wesleyorama2/simplenet/internal/testserver"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log := logger.New(*level)
	defer log.Sync()

	fixtures := &testserver.Server{}
	server := &http.Server{
		Addr:              *addr,
		Handler:           fixtures.Handler(),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info("starting fixture server", zap.String("addr", *addr))
	if err := server.ListenAndServe(); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
