package config

// TransportConfig selects where TIC bytes come from: the meter's serial
// output or a UDP relay. Exactly one mode is active.
type TransportConfig struct {
	Mode string `toml:"mode"` // "serial" or "udp"

	SerialDevice string `toml:"serial_device"`
	Baudrate     uint   `toml:"baudrate"` // 1200 or 9600
	Parity       string `toml:"parity"`   // "even" or "odd"

	UDPBind string `toml:"udp_bind"`
	UDPPort int    `toml:"udp_port"`
}

// SensorConfig selects which sensors are instantiated and how chatty they
// are. Enabled maps sensor UID to slot count (0 or absent = disabled).
// Cycle is the heartbeat: unchanged updates tolerated before a forced
// re-emission, 0 disables it.
type SensorConfig struct {
	Cycle   int            `toml:"cycle"`
	Enabled map[string]int `toml:"enabled"`
}

type APIConfig struct {
	ListenAddress string `toml:"listen_address"`
	ListenPort    int    `toml:"listen_port"`
}

// MQTTConfig configures the optional event publisher. Empty values with
// Enabled false are acceptable.
type MQTTConfig struct {
	Enabled     bool   `toml:"enabled"`
	BrokerURL   string `toml:"broker_url"`
	ClientID    string `toml:"client_id"`
	TopicPrefix string `toml:"topic_prefix"`
}

type DiagnosticsConfig struct {
	// Whether checksum errors are broadcast to subscribers or only logged.
	BroadcastChecksumErrors bool `toml:"broadcast_checksum_errors"`
}

type TicAPIConfig struct {
	LogLevel    string            `toml:"log_level"`
	Transport   TransportConfig   `toml:"transport"`
	Sensors     SensorConfig      `toml:"sensors"`
	API         APIConfig         `toml:"api"`
	MQTT        MQTTConfig        `toml:"mqtt"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type CollectorConfig struct {
	TicAPIHost string `toml:"tic_api_host"`
	TLSEnabled bool   `toml:"tls_enabled"`
}
