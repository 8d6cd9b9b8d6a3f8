// tic_collector subscribes to a tic_api instance and prints every event
// as a JSON line. Depends on the tic_api being online.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/openlinky/linky_tic/pkg/config"
	"github.com/openlinky/linky_tic/pkg/listener"
	"github.com/openlinky/linky_tic/pkg/logging"
)

func main() {
	if err := config.LoadCollectorConfig(); err != nil {
		log.Fatalf("Failed to load collector config: %v", err)
	}
	cfg := config.ActiveCollectorConfig

	logger, err := logging.New("info")
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Sugar()

	// TIC_API_HOST overrides the config file for containerized deployments.
	host := cfg.TicAPIHost
	if env := os.Getenv("TIC_API_HOST"); env != "" {
		host = env
	}

	// Subscribe to websocket with reconnect
	listener.StartListener(host, cfg.TLSEnabled, zlog, func(event []byte) {
		fmt.Println(string(event))
	})
}
