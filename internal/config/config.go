package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultJurisdiction   = "US"
	DefaultTimeoutSeconds = 120

	ConfigDirName    = ".kmrl-vault"
	ConfigFileName   = "config.json"
	UploadedFileName = "uploaded.json"
)

// Config session fields are written by the 401 recovery path while
// other goroutines read the token for outgoing requests, so access to
// them goes through the guarded methods below.
type Config struct {
	mu sync.RWMutex

	ServerURL      string   `json:"server_url"`
	AccessToken    string   `json:"access_token,omitempty"`
	SessionID      string   `json:"session_id,omitempty"`
	ExpiresAt      string   `json:"expires_at,omitempty"`
	ClientID       string   `json:"client_id,omitempty"`
	Jurisdiction   string   `json:"jurisdiction,omitempty"`
	WatchDirs      []string `json:"watch_dirs,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
	LogFile        string   `json:"log_file,omitempty"`
}

// UploadedLedger records sha256 hashes of files already uploaded,
// so watch mode never uploads the same content twice. Quiescence
// callbacks touch it from separate goroutines, hence the lock.
type UploadedLedger struct {
	mu     sync.Mutex
	Hashes map[string]time.Time `json:"hashes"`
}

func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ConfigDirName)
}

func Path() string {
	return filepath.Join(Dir(), ConfigFileName)
}

func UploadedPath() string {
	return filepath.Join(Dir(), UploadedFileName)
}

func EnsureDir() error {
	return os.MkdirAll(Dir(), 0700)
}

// Load reads the config file, applies defaults and environment
// overrides, and assigns a persistent client id on first use.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{ServerURL: DefaultServerURL}

	data, err := os.ReadFile(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("KMRL_VAULT_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("KMRL_VAULT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Jurisdiction == "" {
		cfg.Jurisdiction = DefaultJurisdiction
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}
	return cfg, nil
}

func (c *Config) Save() error {
	if err := EnsureDir(); err != nil {
		return err
	}

	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(Path(), data, 0600)
}

func (c *Config) HasSession() bool {
	return c.Token() != ""
}

// Token returns the stored access token, empty when no session exists.
func (c *Config) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AccessToken
}

// SetSession stores a freshly issued token. expiresIn is in seconds.
func (c *Config) SetSession(accessToken, sessionID string, expiresIn int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AccessToken = accessToken
	c.SessionID = sessionID
	c.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second).Format(time.RFC3339)
}

func (c *Config) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AccessToken = ""
	c.SessionID = ""
	c.ExpiresAt = ""
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ClientInfo identifies this installation to the session endpoint.
func (c *Config) ClientInfo() string {
	return "cli_" + c.ClientID
}

func LoadUploadedLedger() (*UploadedLedger, error) {
	ledger := &UploadedLedger{Hashes: make(map[string]time.Time)}

	data, err := os.ReadFile(UploadedPath())
	if err != nil {
		if os.IsNotExist(err) {
			return ledger, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (l *UploadedLedger) Save() error {
	if err := EnsureDir(); err != nil {
		return err
	}
	l.mu.Lock()
	data, err := json.MarshalIndent(l, "", "  ")
	l.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(UploadedPath(), data, 0600)
}

func (l *UploadedLedger) HasHash(hash string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.Hashes[hash]
	return exists
}

func (l *UploadedLedger) AddHash(hash string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Hashes[hash] = time.Now()
}

// Count returns how many uploads the ledger has recorded.
func (l *UploadedLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Hashes)
}
