package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/openlinky/linky_tic/pkg/pathing"
)

var (
	ActiveTicAPIConfig    *TicAPIConfig
	ActiveCollectorConfig *CollectorConfig
)

func defaultTicAPIConfig() *TicAPIConfig {
	return &TicAPIConfig{
		LogLevel: "info",
		Transport: TransportConfig{
			Mode:         "serial",
			SerialDevice: "/dev/ttyUSB0",
			Baudrate:     9600,
			Parity:       "even",
			UDPBind:      "0.0.0.0",
			UDPPort:      5555,
		},
		Sensors: SensorConfig{
			Cycle: 0,
			// Default set mirrors what a household dashboard needs; see
			// pkg/sensor for the full catalog.
			Enabled: map[string]int{
				"IINST":  4,
				"SINSTS": 4,
				"ADPS":   4,
				"ADSC":   1,
				"ENERGY": 2,
				"STGE":   1,
			},
		},
		API: APIConfig{
			ListenAddress: "0.0.0.0",
			ListenPort:    9042,
		},
		MQTT: MQTTConfig{
			Enabled:     false,
			BrokerURL:   "tcp://localhost:1883",
			ClientID:    "linky_tic",
			TopicPrefix: "linky/tic",
		},
		Diagnostics: DiagnosticsConfig{
			BroadcastChecksumErrors: false,
		},
	}
}

func LoadTicAPIConfig() error {
	configPath := pathing.GetConfigPath("tic_api.toml")

	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultTicAPIConfig()
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		toml.NewEncoder(cfgFile).Encode(cfg)
		ActiveTicAPIConfig = cfg
		return nil
	}

	// Load existing config
	var cfg TicAPIConfig
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return err
	}
	if err := cfg.Transport.Validate(); err != nil {
		return err
	}
	ActiveTicAPIConfig = &cfg
	return nil
}

func LoadCollectorConfig() error {
	configPath := pathing.GetConfigPath("tic_collector.toml")

	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &CollectorConfig{
			TicAPIHost: "localhost:9042",
			TLSEnabled: false,
		}
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		toml.NewEncoder(cfgFile).Encode(cfg)
		ActiveCollectorConfig = cfg
		return nil
	}

	// Load existing config
	var cfg CollectorConfig
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return err
	}
	ActiveCollectorConfig = &cfg
	return nil
}

// Validate rejects transport parameters before any I/O happens.
func (t *TransportConfig) Validate() error {
	switch t.Mode {
	case "serial":
		if t.SerialDevice == "" {
			return fmt.Errorf("config: serial_device is required in serial mode")
		}
		if t.Baudrate != 1200 && t.Baudrate != 9600 {
			return fmt.Errorf("config: baudrate must be 1200 or 9600, got %d", t.Baudrate)
		}
		if t.Parity != "even" && t.Parity != "odd" {
			return fmt.Errorf("config: parity must be even or odd, got %q", t.Parity)
		}
	case "udp":
		if t.UDPPort <= 0 || t.UDPPort > 65535 {
			return fmt.Errorf("config: udp_port must be in 1..65535, got %d", t.UDPPort)
		}
	default:
		return fmt.Errorf("config: transport mode must be serial or udp, got %q", t.Mode)
	}
	return nil
}
