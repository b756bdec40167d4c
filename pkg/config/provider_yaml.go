package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := parseYAML(cfgFile)
	if err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Datasets: make([]DatasetData, len(yamlConfig.Datasets)),
		Server: ServerData{
			ListenAddr: yamlConfig.Server.ListenAddr,
			Port:       yamlConfig.Server.Port,
			Cert:       yamlConfig.Server.Cert,
			Key:        yamlConfig.Server.Key,
			EnableCORS: yamlConfig.Server.EnableCORS,
		},
		Analysis: AnalysisData{
			DefaultRange:  yamlConfig.Analysis.DefaultRange,
			DefaultGender: yamlConfig.Analysis.DefaultGender,
			DefaultPhase:  yamlConfig.Analysis.DefaultPhase,
			Baseline:      yamlConfig.Analysis.Baseline,
			CycleLength:   yamlConfig.Analysis.CycleLength,
			FetchTimeout:  yamlConfig.Analysis.FetchTimeout,
		},
	}

	for i, d := range yamlConfig.Datasets {
		config.Datasets[i] = DatasetData{
			Name:   d.Name,
			Metric: d.Metric,
			Gender: d.Gender,
			Source: d.Source,
			Path:   d.Path,
			URL:    d.URL,
		}
	}

	if yamlConfig.GRPC != nil {
		config.GRPC = &GRPCData{
			ListenAddr: yamlConfig.GRPC.ListenAddr,
			Port:       yamlConfig.GRPC.Port,
			Cert:       yamlConfig.GRPC.Cert,
			Key:        yamlConfig.GRPC.Key,
		}
	}

	if yamlConfig.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: yamlConfig.Storage.TimescaleDB.ConnectionString,
		}
	}

	ApplyDefaults(config)
	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatasets returns dataset configurations
func (y *YAMLProvider) GetDatasets() ([]DatasetData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Datasets, nil
}

// GetServerConfig returns the REST server configuration
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// GetAnalysisConfig returns the analysis defaults
func (y *YAMLProvider) GetAnalysisConfig() (*AnalysisData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Analysis, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with YAML tags
type ConfigYAML struct {
	Datasets []DatasetYAML `yaml:"datasets"`
	Server   ServerYAML    `yaml:"server,omitempty"`
	GRPC     *GRPCYAML     `yaml:"grpc,omitempty"`
	Storage  StorageYAML   `yaml:"storage,omitempty"`
	Analysis AnalysisYAML  `yaml:"analysis,omitempty"`
}

type DatasetYAML struct {
	Name   string `yaml:"name"`
	Metric string `yaml:"metric"`
	Gender string `yaml:"gender"`
	Source string `yaml:"source,omitempty"`
	Path   string `yaml:"path,omitempty"`
	URL    string `yaml:"url,omitempty"`
}

type ServerYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	EnableCORS bool   `yaml:"enable-cors,omitempty"`
}

type GRPCYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
}

type StorageYAML struct {
	TimescaleDB *TimescaleDBYAML `yaml:"timescaledb,omitempty"`
}

type TimescaleDBYAML struct {
	ConnectionString string `yaml:"connection-string"`
}

type AnalysisYAML struct {
	DefaultRange  string `yaml:"default-range,omitempty"`
	DefaultGender string `yaml:"default-gender,omitempty"`
	DefaultPhase  string `yaml:"default-phase,omitempty"`
	Baseline      string `yaml:"baseline,omitempty"`
	CycleLength   int    `yaml:"cycle-length,omitempty"`
	FetchTimeout  string `yaml:"fetch-timeout,omitempty"`
}
