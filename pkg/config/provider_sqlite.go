package config

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS datasets (
	name   TEXT PRIMARY KEY,
	metric TEXT NOT NULL,
	gender TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT 'file',
	path   TEXT,
	url    TEXT
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Keys of the settings table
const (
	settingServerListenAddr  = "server.listen_addr"
	settingServerPort        = "server.port"
	settingServerCert        = "server.cert"
	settingServerKey         = "server.key"
	settingServerEnableCORS  = "server.enable_cors"
	settingGRPCListenAddr    = "grpc.listen_addr"
	settingGRPCPort          = "grpc.port"
	settingGRPCCert          = "grpc.cert"
	settingGRPCKey           = "grpc.key"
	settingTimescaleConnStr  = "storage.timescaledb.connection_string"
	settingAnalysisRange     = "analysis.default_range"
	settingAnalysisGender    = "analysis.default_gender"
	settingAnalysisPhase     = "analysis.default_phase"
	settingAnalysisBaseline  = "analysis.baseline"
	settingAnalysisCycle     = "analysis.cycle_length"
	settingAnalysisFetchTime = "analysis.fetch_timeout"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// EnsureSchema creates the configuration tables if they do not exist yet
func (s *SQLiteProvider) EnsureSchema() error {
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create configuration schema: %w", err)
	}
	return nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	datasets, err := s.queryDatasets()
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	config.Datasets = datasets

	settings, err := s.querySettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	config.Server = ServerData{
		ListenAddr: settings[settingServerListenAddr],
		Port:       atoi(settings[settingServerPort]),
		Cert:       settings[settingServerCert],
		Key:        settings[settingServerKey],
		EnableCORS: settings[settingServerEnableCORS] == "true",
	}

	if port := atoi(settings[settingGRPCPort]); port != 0 {
		config.GRPC = &GRPCData{
			ListenAddr: settings[settingGRPCListenAddr],
			Port:       port,
			Cert:       settings[settingGRPCCert],
			Key:        settings[settingGRPCKey],
		}
	}

	if connStr := settings[settingTimescaleConnStr]; connStr != "" {
		config.Storage.TimescaleDB = &TimescaleDBData{ConnectionString: connStr}
	}

	config.Analysis = AnalysisData{
		DefaultRange:  settings[settingAnalysisRange],
		DefaultGender: settings[settingAnalysisGender],
		DefaultPhase:  settings[settingAnalysisPhase],
		Baseline:      settings[settingAnalysisBaseline],
		CycleLength:   atoi(settings[settingAnalysisCycle]),
		FetchTimeout:  settings[settingAnalysisFetchTime],
	}

	ApplyDefaults(config)
	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatasets returns dataset configurations from the database
func (s *SQLiteProvider) GetDatasets() ([]DatasetData, error) {
	config, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	return config.Datasets, nil
}

// GetServerConfig returns the REST server configuration from the database
func (s *SQLiteProvider) GetServerConfig() (*ServerData, error) {
	config, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Server, nil
}

// GetAnalysisConfig returns the analysis defaults from the database
func (s *SQLiteProvider) GetAnalysisConfig() (*AnalysisData, error) {
	config, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Analysis, nil
}

func (s *SQLiteProvider) queryDatasets() ([]DatasetData, error) {
	rows, err := s.db.Query(`SELECT name, metric, gender, source, path, url FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var datasets []DatasetData
	for rows.Next() {
		var d DatasetData
		var path, url sql.NullString

		if err := rows.Scan(&d.Name, &d.Metric, &d.Gender, &d.Source, &path, &url); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}

		// Convert nullable fields to empty strings if NULL
		if path.Valid {
			d.Path = path.String
		}
		if url.Valid {
			d.URL = url.String
		}

		datasets = append(datasets, d)
	}

	return datasets, rows.Err()
}

func (s *SQLiteProvider) querySettings() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// SaveConfig replaces the stored configuration with config
func (s *SQLiteProvider) SaveConfig(config *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM datasets`); err != nil {
		return fmt.Errorf("failed to clear datasets: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	for _, d := range config.Datasets {
		_, err := tx.Exec(
			`INSERT INTO datasets (name, metric, gender, source, path, url) VALUES (?, ?, ?, ?, ?, ?)`,
			d.Name, d.Metric, d.Gender, d.Source, nullString(d.Path), nullString(d.URL),
		)
		if err != nil {
			return fmt.Errorf("failed to insert dataset %s: %w", d.Name, err)
		}
	}

	settings := map[string]string{
		settingServerListenAddr:  config.Server.ListenAddr,
		settingServerPort:        itoa(config.Server.Port),
		settingServerCert:        config.Server.Cert,
		settingServerKey:         config.Server.Key,
		settingServerEnableCORS:  strconv.FormatBool(config.Server.EnableCORS),
		settingAnalysisRange:     config.Analysis.DefaultRange,
		settingAnalysisGender:    config.Analysis.DefaultGender,
		settingAnalysisPhase:     config.Analysis.DefaultPhase,
		settingAnalysisBaseline:  config.Analysis.Baseline,
		settingAnalysisCycle:     itoa(config.Analysis.CycleLength),
		settingAnalysisFetchTime: config.Analysis.FetchTimeout,
	}
	if config.GRPC != nil {
		settings[settingGRPCListenAddr] = config.GRPC.ListenAddr
		settings[settingGRPCPort] = itoa(config.GRPC.Port)
		settings[settingGRPCCert] = config.GRPC.Cert
		settings[settingGRPCKey] = config.GRPC.Key
	}
	if config.Storage.TimescaleDB != nil {
		settings[settingTimescaleConnStr] = config.Storage.TimescaleDB.ConnectionString
	}

	for key, value := range settings {
		if value == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// IsReadOnly returns false since SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
