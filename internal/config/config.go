// Package config holds the clipset configuration: external tool locations
// and the encoding presets passed through to ffmpeg.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools locates the external executables.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Encode contains the fixed encoding parameters for the re-encoding clip
// extractor. Values map one-to-one onto ffmpeg flags.
type Encode struct {
	VideoCodec    string `toml:"video_codec"`
	Preset        string `toml:"preset"`
	CRF           int    `toml:"crf"`
	PixelFormat   string `toml:"pixel_format"`
	AudioCodec    string `toml:"audio_codec"`
	AudioBitrate  string `toml:"audio_bitrate"`
	TonemapFilter string `toml:"tonemap_filter"`
	DefaultOutput string `toml:"default_output"`
}

// Audio contains the batch audio converter parameters.
type Audio struct {
	SourceExt string `toml:"source_ext"`
	TargetExt string `toml:"target_ext"`
	Bitrate   string `toml:"bitrate"`
}

// Log contains logger configuration.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Tools  Tools  `toml:"tools"`
	Encode Encode `toml:"encode"`
	Audio  Audio  `toml:"audio"`
	Log    Log    `toml:"log"`
}

const (
	defaultVideoCodec   = "libx264"
	defaultPreset       = "veryfast"
	defaultCRF          = 18
	defaultPixelFormat  = "yuv420p"
	defaultAudioCodec   = "aac"
	defaultAudioBitrate = "192k"
	defaultOutputName   = "output.mp4"
	defaultSourceExt    = "flac"
	defaultTargetExt    = "mp3"
	defaultMP3Bitrate   = "320k"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"

	// Mobius tonemapping through zscale; suitable for typical HDR10 content,
	// adjust per source material via [encode].tonemap_filter.
	defaultTonemapFilter = "zscale=t=linear:npl=100,format=gbrpf32le,zscale=p=bt709," +
		"tonemap=tonemap=mobius:desat=2,zscale=t=bt709:m=bt709:r=tv,format=yuv420p"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Encode: Encode{
			VideoCodec:    defaultVideoCodec,
			Preset:        defaultPreset,
			CRF:           defaultCRF,
			PixelFormat:   defaultPixelFormat,
			AudioCodec:    defaultAudioCodec,
			AudioBitrate:  defaultAudioBitrate,
			TonemapFilter: defaultTonemapFilter,
			DefaultOutput: defaultOutputName,
		},
		Audio: Audio{
			SourceExt: defaultSourceExt,
			TargetExt: defaultTargetExt,
			Bitrate:   defaultMP3Bitrate,
		},
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clipset", "config.toml")
}

// Load reads the configuration file at path, layered over defaults, then
// applies CLIPSET_* environment overrides. A missing file is not an error
// when the path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// defaults only
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CLIPSET_FFMPEG"); v != "" {
		c.Tools.FFmpeg = v
	}
	if v := os.Getenv("CLIPSET_FFPROBE"); v != "" {
		c.Tools.FFprobe = v
	}
	if v := os.Getenv("CLIPSET_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CLIPSET_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate checks the configuration for values ffmpeg would reject outright.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("config: tools.ffmpeg must not be empty")
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("config: tools.ffprobe must not be empty")
	}
	if c.Encode.CRF < 0 || c.Encode.CRF > 51 {
		return fmt.Errorf("config: encode.crf %d out of range 0-51", c.Encode.CRF)
	}
	if strings.TrimSpace(c.Audio.SourceExt) == "" || strings.TrimSpace(c.Audio.TargetExt) == "" {
		return errors.New("config: audio extensions must not be empty")
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path. An existing
// file is preserved unless force is set.
func WriteSample(path string, force bool) error {
	if path == "" {
		return errors.New("config: no destination path")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: ensure directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// Marshal renders the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
