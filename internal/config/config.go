package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Last.fm API credentials and default user
	LastFM LastFMConfig

	// Spotify client credentials, used for artwork search
	Spotify SpotifyConfig

	Tags   TagsConfig
	Images ImagesConfig

	// Deadline applied to every outbound request
	HTTPTimeout time.Duration

	// How long artist corrections are remembered; 0 keeps them for the session
	CorrectionTTL time.Duration

	// Directory holding the sqlite store
	// Default: ~/.config/recap
	DataDir string
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	APIKey   string
	Username string
}

// SpotifyConfig holds Spotify client credentials
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

// TagsConfig controls the top tags fallback
type TagsConfig struct {
	// "albums" or "tracks"
	Strategy    string
	AlbumSample int
	TrackSample int
	BatchSize   int
	BatchDelay  time.Duration
}

// ImagesConfig controls batch image resolution
type ImagesConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, configDir)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. RECAP_LASTFM_API_KEY
	v.SetEnvPrefix("RECAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("tags.strategy", "albums")
	v.SetDefault("tags.album_sample", 5)
	v.SetDefault("tags.track_sample", 50)
	v.SetDefault("tags.batch_size", 5)
	v.SetDefault("tags.batch_delay", 300*time.Millisecond)
	v.SetDefault("images.batch_size", 10)
	v.SetDefault("images.batch_delay", time.Second)
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("cache.correction_ttl", time.Duration(0))
	v.SetDefault("data_dir", configDir)

	// AutomaticEnv only sees keys viper already knows about.
	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.username", "")
	v.SetDefault("spotify.client_id", "")
	v.SetDefault("spotify.client_secret", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		LastFM: LastFMConfig{
			APIKey:   v.GetString("lastfm.api_key"),
			Username: v.GetString("lastfm.username"),
		},
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
		},
		Tags: TagsConfig{
			Strategy:    v.GetString("tags.strategy"),
			AlbumSample: v.GetInt("tags.album_sample"),
			TrackSample: v.GetInt("tags.track_sample"),
			BatchSize:   v.GetInt("tags.batch_size"),
			BatchDelay:  v.GetDuration("tags.batch_delay"),
		},
		Images: ImagesConfig{
			BatchSize:  v.GetInt("images.batch_size"),
			BatchDelay: v.GetDuration("images.batch_delay"),
		},
		HTTPTimeout:   v.GetDuration("http.timeout"),
		CorrectionTTL: v.GetDuration("cache.correction_ttl"),
		DataDir:       v.GetString("data_dir"),
	}
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "recap")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// DatabasePath returns the sqlite store location inside DataDir
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "recap.db")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("lastfm.api_key", c.LastFM.APIKey)
	v.Set("lastfm.username", c.LastFM.Username)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	v.Set("tags.strategy", c.Tags.Strategy)
	v.Set("tags.album_sample", c.Tags.AlbumSample)
	v.Set("tags.track_sample", c.Tags.TrackSample)
	v.Set("tags.batch_size", c.Tags.BatchSize)
	v.Set("tags.batch_delay", c.Tags.BatchDelay.String())
	v.Set("images.batch_size", c.Images.BatchSize)
	v.Set("images.batch_delay", c.Images.BatchDelay.String())
	v.Set("http.timeout", c.HTTPTimeout.String())
	v.Set("cache.correction_ttl", c.CorrectionTTL.String())
	v.Set("data_dir", c.DataDir)

	// Write to file
	return v.WriteConfigAs(configFile)
}
