// tic_api reads the TIC output of a Linky meter and broadcasts decoded
// sensor readings over websocket, HTTP and optionally MQTT.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/openlinky/linky_tic/pkg/broadcast"
	"github.com/openlinky/linky_tic/pkg/config"
	"github.com/openlinky/linky_tic/pkg/driver"
	"github.com/openlinky/linky_tic/pkg/logging"
	"github.com/openlinky/linky_tic/pkg/publisher"
	"github.com/openlinky/linky_tic/pkg/sensor"
	"github.com/openlinky/linky_tic/pkg/source"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

func main() {
	// Load config
	if err := config.LoadTicAPIConfig(); err != nil {
		log.Fatalf("Failed to load tic_api config: %v", err)
	}
	cfg := config.ActiveTicAPIConfig

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Sugar()

	cache, err := sensor.NewCache(cfg.Sensors.Enabled, cfg.Sensors.Cycle)
	if err != nil {
		zlog.Fatalw("invalid sensor configuration", "error", err)
	}

	hub := broadcast.NewHub(zlog)

	var pub *publisher.Publisher
	if cfg.MQTT.Enabled {
		pub, err = publisher.New(cfg.MQTT, zlog)
		if err != nil {
			zlog.Fatalw("mqtt setup failed", "error", err)
		}
		defer pub.Close()
	}

	src, err := newSource(cfg.Transport)
	if err != nil {
		zlog.Fatalw("invalid transport configuration", "error", err)
	}
	if err := src.Open(); err != nil {
		zlog.Fatalw("failed to open source", "source", src, "error", err)
	}

	drv := driver.New(src, cache, zlog, driver.Options{
		OnEvent: func(ev sensor.Event) {
			hub.Broadcast(ev)
			if pub != nil {
				pub.PublishEvent(ev)
			}
		},
		OnDiagnostic: func(d driver.Diagnostic) {
			hub.Broadcast(d)
		},
		BroadcastChecksumErrors: cfg.Diagnostics.BroadcastChecksumErrors,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := drv.Run(ctx); err != nil {
			zlog.Fatalw("driver stopped", "error", err)
		}
	}()

	// Setup HTTP handlers
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"message":     "Linky TIC API",
			"status":      "running",
			"subscribers": hub.Count(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})

	http.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cache.Latest())
	})

	http.HandleFunc("/sensors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cache.Enabled())
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			zlog.Warnw("websocket upgrade error", "error", err)
			return
		}

		hub.Add(conn)

		// Send current state immediately so clients need not wait for the
		// next change.
		if snapshot, err := json.Marshal(cache.Latest()); err == nil {
			conn.WriteMessage(websocket.TextMessage, snapshot)
		}

		// Keep connection alive
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Remove(conn)
				break
			}
		}
	})

	addr := fmt.Sprintf("%s:%d", cfg.API.ListenAddress, cfg.API.ListenPort)
	zlog.Infow("starting Linky TIC API", "listen", addr, "transport", cfg.Transport.Mode)
	zlog.Fatal(http.ListenAndServe(addr, nil))
}

func newSource(t config.TransportConfig) (source.Chunker, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch t.Mode {
	case "serial":
		return source.NewSerial(t.SerialDevice, t.Baudrate, t.Parity)
	case "udp":
		return source.NewUDP(t.UDPBind, t.UDPPort), nil
	}
	return nil, fmt.Errorf("unsupported transport mode %q", t.Mode)
}
