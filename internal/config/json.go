package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations are declared through the [Duration] wrapper so the file can use
// human-readable values like "30s" or "1h".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		KV struct {
			SQLiteDSN string `json:"sqlite_dsn"`
			FilePath  string `json:"file_path"`
		} `json:"kv,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Engine struct {
		RegisterID       string   `json:"register_id"`
		UserID           int64    `json:"user_id"`
		DraftType        string   `json:"draft_type"`
		MaxRetries       int      `json:"max_retries"`
		RetryDelay       Duration `json:"retry_delay"`
		AutoSaveInterval Duration `json:"auto_save_interval"`
		DebounceDelay    Duration `json:"debounce_delay"`
		PingInterval     Duration `json:"ping_interval"`
	} `json:"engine,omitempty"`

	Drafts struct {
		TTL              Duration `json:"ttl"`
		JournalRetention Duration `json:"journal_retention"`
	} `json:"drafts,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			KV: KV{
				SQLiteDSN: jsonCfg.Storage.KV.SQLiteDSN,
				FilePath:  jsonCfg.Storage.KV.FilePath,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Engine: Engine{
			RegisterID:       jsonCfg.Engine.RegisterID,
			UserID:           jsonCfg.Engine.UserID,
			DraftType:        jsonCfg.Engine.DraftType,
			MaxRetries:       jsonCfg.Engine.MaxRetries,
			RetryDelay:       time.Duration(jsonCfg.Engine.RetryDelay),
			AutoSaveInterval: time.Duration(jsonCfg.Engine.AutoSaveInterval),
			DebounceDelay:    time.Duration(jsonCfg.Engine.DebounceDelay),
			PingInterval:     time.Duration(jsonCfg.Engine.PingInterval),
		},
		Drafts: Drafts{
			TTL:              time.Duration(jsonCfg.Drafts.TTL),
			JournalRetention: time.Duration(jsonCfg.Drafts.JournalRetention),
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
