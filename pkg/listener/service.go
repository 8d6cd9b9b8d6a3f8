// Package listener maintains a websocket subscription to a tic_api
// instance and hands every received event to a callback.
package listener

import (
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StartListener connects to host's /ws endpoint and calls handle with the
// raw JSON bytes of every event. Reconnects with exponential backoff on
// connection loss; returns on interrupt or after too many failed attempts.
func StartListener(host string, useTLS bool, log *zap.SugaredLogger, handle func(event []byte)) {
	const (
		maxRetries     = 10
		baseRetryDelay = 2 * time.Second
		maxRetryDelay  = 60 * time.Second
	)

	scheme := "ws"
	if useTLS {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: host, Path: "/ws"}

	// Channel to handle interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	retryCount := 0

	for {
		select {
		case <-interrupt:
			log.Info("interrupt received, shutting down")
			return
		default:
			// Exponential backoff between attempts
			retryDelay := time.Duration(1<<retryCount) * baseRetryDelay
			if retryDelay > maxRetryDelay {
				retryDelay = maxRetryDelay
			}

			if retryCount > 0 {
				log.Infow("retrying connection", "delay", retryDelay,
					"attempt", retryCount+1, "max", maxRetries)
				select {
				case <-time.After(retryDelay):
				case <-interrupt:
					log.Info("interrupt received during retry wait, shutting down")
					return
				}
			}

			log.Infow("connecting", "url", u.String())

			dialer := websocket.DefaultDialer
			dialer.HandshakeTimeout = 10 * time.Second
			c, _, err := dialer.Dial(u.String(), nil)
			if err != nil {
				log.Warnw("connection failed", "error", err)
				retryCount++
				if retryCount >= maxRetries {
					log.Errorw("max retries reached, giving up", "max", maxRetries)
					return
				}
				continue
			}

			log.Info("connected, accepting events")
			retryCount = 0

			connectionBroken := handleConnection(c, interrupt, log, handle)

			c.Close()

			if !connectionBroken {
				// Clean shutdown requested
				return
			}

			log.Warn("connection lost, will retry")
		}
	}
}

func handleConnection(
	c *websocket.Conn,
	interrupt chan os.Signal,
	log *zap.SugaredLogger,
	handle func(event []byte),
) bool {
	done := make(chan struct{})

	// Events only flow when readings change, so the read deadline must
	// outlast a quiet meter plus our own ping interval.
	const readTimeout = 90 * time.Second
	c.SetReadDeadline(time.Now().Add(readTimeout))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Goroutine to read messages
	go func() {
		defer close(done)
		for {
			messageType, message, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warnw("websocket error", "error", err)
				} else {
					log.Infow("connection closed", "error", err)
				}
				return
			}

			c.SetReadDeadline(time.Now().Add(readTimeout))

			if messageType == websocket.TextMessage {
				handle(message)
			}
		}
	}()

	// Periodic pings keep the connection alive through quiet stretches.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
					log.Warnw("failed to send ping", "error", err)
					return
				}
			case <-done:
				return
			}
		}
	}()

	select {
	case <-done:
		// Connection broke
		return true
	case <-interrupt:
		log.Info("interrupt received, closing connection")

		err := c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Warnw("error sending close message", "error", err)
		}

		// Wait for close confirmation or timeout
		select {
		case <-done:
		case <-time.After(time.Second):
		}

		return false
	}
}
