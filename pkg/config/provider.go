package config

import (
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDatasets() ([]DatasetData, error)
	GetServerConfig() (*ServerData, error)
	GetAnalysisConfig() (*AnalysisData, error)

	IsReadOnly() bool
	Close() error
}

// Dataset metrics
const (
	MetricTemperature = "temperature"
	MetricActivity    = "activity"
)

// Dataset genders
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// Dataset source kinds
const (
	SourceFile        = "file"
	SourceHTTP        = "http"
	SourceTimescaleDB = "timescaledb"
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Datasets []DatasetData `json:"datasets"`
	Server   ServerData    `json:"server"`
	GRPC     *GRPCData     `json:"grpc,omitempty"`
	Storage  StorageData   `json:"storage,omitempty"`
	Analysis AnalysisData  `json:"analysis"`
}

// DatasetData describes one CSV time series and where to fetch it from
type DatasetData struct {
	Name   string `json:"name"`
	Metric string `json:"metric"`
	Gender string `json:"gender"`
	Source string `json:"source"`
	Path   string `json:"path,omitempty"`
	URL    string `json:"url,omitempty"`
}

// ServerData holds the REST server configuration
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	EnableCORS bool   `json:"enable_cors,omitempty"`
}

// GRPCData holds the gRPC health server configuration. A zero port disables it.
type GRPCData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
}

// StorageData holds database backends that datasets can be read from
type StorageData struct {
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// AnalysisData holds the defaults used when a request leaves a selector out
type AnalysisData struct {
	DefaultRange  string `json:"default_range,omitempty"`
	DefaultGender string `json:"default_gender,omitempty"`
	DefaultPhase  string `json:"default_phase,omitempty"`
	Baseline      string `json:"baseline,omitempty"`
	CycleLength   int    `json:"cycle_length,omitempty"`
	FetchTimeout  string `json:"fetch_timeout,omitempty"`
}

// FetchTimeoutDuration parses FetchTimeout, falling back to the default on error.
func (a AnalysisData) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.FetchTimeout)
	if err != nil || d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}
