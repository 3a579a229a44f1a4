// Package config loads the mariner settings from a TOML file. Every value
// has a default matching a stock Raspberry Pi install, and a malformed file
// degrades per key: a section or key of the wrong shape falls back to its
// default instead of failing the whole load.
package config

import (
	"errors"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Defaults for a stock install: print files arrive on the USB gadget share,
// the printer hangs off the Pi UART.
const (
	DefaultFilesDirectory = "/mnt/usb_share"
	DefaultCacheDirectory = "/tmp/mariner/"
	DefaultSerialPort     = "/dev/serial0"
	DefaultBaudrate       = 115200
	DefaultHTTPHost       = "0.0.0.0"
	DefaultHTTPPort       = 5050
)

// Printer holds the [printer] section
type Printer struct {
	DisplayName string
	SerialPort  string
	Baudrate    int
}

// RelayBoard holds the [relay_board] section controlling printer power.
// The pointer fields stay nil for keys the file does not set, so a missing
// pin is distinguishable from pin 0.
type RelayBoard struct {
	RelayPin     *int
	InitialValue *int
	ActiveHigh   *bool
}

// HTTP holds the [http] section
type HTTP struct {
	Host string
	Port int
}

// Cache holds the [cache] section
type Cache struct {
	Directory string
}

// HomeAssistant holds the [homeassistant] section for MQTT discovery.
// Empty fields mean the integration is not configured.
type HomeAssistant struct {
	Address  string
	User     string
	Password string
	Topic    string
}

// Configured reports whether a broker address was set
func (h HomeAssistant) Configured() bool {
	return h.Address != ""
}

// Settings is the full configuration tree
type Settings struct {
	FilesDirectory string
	Cache          Cache
	Printer        Printer
	RelayBoard     *RelayBoard // nil when the section is absent
	HTTP           HTTP
	HomeAssistant  HomeAssistant
}

// Default returns the settings used when no config file exists
func Default() Settings {
	return Settings{
		FilesDirectory: DefaultFilesDirectory,
		Cache:          Cache{Directory: DefaultCacheDirectory},
		Printer: Printer{
			SerialPort: DefaultSerialPort,
			Baudrate:   DefaultBaudrate,
		},
		HTTP: HTTP{
			Host: DefaultHTTPHost,
			Port: DefaultHTTPPort,
		},
	}
}

// Load reads the first config.toml found in the working directory,
// ~/.mariner or /etc/mariner. No file at all is not an error; the defaults
// apply.
func Load() (Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.mariner")
	v.AddConfigPath("/etc/mariner")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Default(), nil
		}
		return Settings{}, err
	}
	return fromViper(v), nil
}

// LoadFile reads settings from an explicit path. Unlike Load, a missing
// file is an error here: the caller asked for that file specifically.
func LoadFile(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, err
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Settings {
	s := Default()

	s.FilesDirectory = stringOr(v.Get("files_directory"), s.FilesDirectory)

	if sec := section(v, "cache"); sec != nil {
		s.Cache.Directory = stringOr(sec["directory"], s.Cache.Directory)
	}

	if sec := section(v, "printer"); sec != nil {
		s.Printer.DisplayName = stringOr(sec["display_name"], "")
		s.Printer.SerialPort = stringOr(sec["serial_port"], s.Printer.SerialPort)
		s.Printer.Baudrate = intOr(sec["baudrate"], s.Printer.Baudrate)
	}

	if sec := section(v, "relay_board"); sec != nil {
		s.RelayBoard = &RelayBoard{
			RelayPin:     intPtr(sec["relay_pin"]),
			InitialValue: intPtr(sec["initial_value"]),
			ActiveHigh:   boolPtr(sec["active_high"]),
		}
	}

	if sec := section(v, "http"); sec != nil {
		s.HTTP.Host = stringOr(sec["host"], s.HTTP.Host)
		s.HTTP.Port = intOr(sec["port"], s.HTTP.Port)
	}

	if sec := section(v, "homeassistant"); sec != nil {
		s.HomeAssistant.Address = stringOr(sec["address"], "")
		s.HomeAssistant.User = stringOr(sec["user"], "")
		s.HomeAssistant.Password = stringOr(sec["password"], "")
		s.HomeAssistant.Topic = stringOr(sec["topic"], "")
	}

	return s
}

// section returns a config table as a map, or nil when the key is absent or
// holds something that is not a table.
func section(v *viper.Viper, key string) map[string]any {
	m, err := cast.ToStringMapE(v.Get(key))
	if err != nil {
		return nil
	}
	return m
}

func stringOr(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fallback
	}
	return s
}

func intOr(value any, fallback int) int {
	if value == nil {
		return fallback
	}
	i, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return i
}

func intPtr(value any) *int {
	if value == nil {
		return nil
	}
	i, err := cast.ToIntE(value)
	if err != nil {
		return nil
	}
	return &i
}

func boolPtr(value any) *bool {
	if value == nil {
		return nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil
	}
	return &b
}
