package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-adapter-address draft service address in format [host]:[port]
//	-adapter-token bearer token the register authenticates with
//	-d database DSN
//	-kv-dsn on-device SQLite path
//	-kv-file on-device JSON fallback path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-register-id register number ("REG-01")
//	-user-id clerk id the register's drafts belong to
//	-draft-type "sale_draft" or "quote_draft"
//	-max-retries per-operation retry budget
//	-retry-delay delay before a failed drain is retried
//	-autosave-interval periodic save cadence
//	-debounce-delay quiet period after an edit before saving
//	-ping-interval connectivity probe cadence
//	-draft-ttl server-side draft lifetime
//	-journal-retention applied-operation journal lifetime
//	-sweep-interval expired-row purge cadence
func ParseFlags() *StructuredConfig {
	var serverAddress, adapterAddress NetAddress
	var adapterToken string
	var databaseDSN string
	var kvSQLiteDSN string
	var kvFilePath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var registerID string
	var userID int64
	var draftType string
	var maxRetries int
	var retryDelay time.Duration
	var autoSaveInterval time.Duration
	var debounceDelay time.Duration
	var pingInterval time.Duration
	var draftTTL time.Duration
	var journalRetention time.Duration
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&adapterAddress, "adapter-address", "Draft service address host:port")
	flag.StringVar(&adapterToken, "adapter-token", "", "Bearer token the register authenticates with")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&kvSQLiteDSN, "kv-dsn", "", "On-device SQLite path")
	flag.StringVar(&kvFilePath, "kv-file", "", "On-device JSON fallback path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&registerID, "register-id", "", "Register number (e.g., REG-01)")
	flag.Int64Var(&userID, "user-id", 0, "Clerk id the register's drafts belong to")
	flag.StringVar(&draftType, "draft-type", "", "Draft type: sale_draft or quote_draft")
	flag.IntVar(&maxRetries, "max-retries", 0, "Per-operation retry budget")
	flag.DurationVar(&retryDelay, "retry-delay", 0, "Delay before a failed drain is retried")
	flag.DurationVar(&autoSaveInterval, "autosave-interval", 0, "Periodic save cadence")
	flag.DurationVar(&debounceDelay, "debounce-delay", 0, "Quiet period after an edit before saving")
	flag.DurationVar(&pingInterval, "ping-interval", 0, "Connectivity probe cadence")
	flag.DurationVar(&draftTTL, "draft-ttl", 0, "Server-side draft lifetime")
	flag.DurationVar(&journalRetention, "journal-retention", 0, "Applied-operation journal lifetime")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired-row purge cadence")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			KV: KV{
				SQLiteDSN: kvSQLiteDSN,
				FilePath:  kvFilePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress.String(),
			RequestTimeout: requestTimeout,
			Token:          adapterToken,
		},
		Engine: Engine{
			RegisterID:       registerID,
			UserID:           userID,
			DraftType:        draftType,
			MaxRetries:       maxRetries,
			RetryDelay:       retryDelay,
			AutoSaveInterval: autoSaveInterval,
			DebounceDelay:    debounceDelay,
			PingInterval:     pingInterval,
		},
		Drafts: Drafts{
			TTL:              draftTTL,
			JournalRetention: journalRetention,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// An unset address yields the empty string so the corresponding config
// field stays zero and a later layer can fill it.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
