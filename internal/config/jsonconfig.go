package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Константы для имен переменных окружения
const (
	EnvAddress        = "ADDRESS"
	EnvDatabaseDSN    = "DATABASE_DSN"
	EnvPollInterval   = "POLL_INTERVAL"
	EnvReportInterval = "REPORT_INTERVAL"
	EnvLogLevel       = "LOG_LEVEL"
	EnvConfig         = "CONFIG"
)

// Константы для флагов командной строки
const (
	FlagAddress        = "a"
	FlagDatabaseDSN    = "d"
	FlagPollInterval   = "p"
	FlagReportInterval = "r"
	FlagLogLevel       = "l"
	FlagConfig         = "c"
)

// AgentFileConfig описывает JSON-файл конфигурации агента.
//
// Поля:
//   - Address: адрес приёмника remote write (host:port)
//   - PollInterval: интервал опроса коллекторов в секундах
//   - ReportInterval: интервал отправки метрик в секундах
type AgentFileConfig struct {
	Address        string `json:"address"`
	PollInterval   int    `json:"poll_interval"`
	ReportInterval int    `json:"report_interval"`
}

// ReceiverFileConfig описывает JSON-файл конфигурации приёмника.
//
// Поля:
//   - Address: адрес, на котором слушает приёмник (host:port)
//   - DatabaseDSN: строка подключения к PostgreSQL (пустая — хранение в памяти)
type ReceiverFileConfig struct {
	Address     string `json:"address"`
	DatabaseDSN string `json:"database_dsn"`
}

// LoadAgentConfig загружает конфигурацию агента из JSON-файла.
//
// path — путь к файлу. Пустой путь возвращает nil без ошибки.
func LoadAgentConfig(path string) (*AgentFileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg AgentFileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadReceiverConfig загружает конфигурацию приёмника из JSON-файла.
//
// path — путь к файлу. Пустой путь возвращает nil без ошибки.
func LoadReceiverConfig(path string) (*ReceiverFileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg ReceiverFileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
