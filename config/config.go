package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var (
	cfgFile     = "termsweeper/config.json"
	saveFile    = "termsweeper/minesweeper_save.txt"
	historyFile = "termsweeper/history.db"
	logFile     = "termsweeper/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	HiddenColor      int   `json:"hidden"`
	HiddenColorAlt   int   `json:"hidden_alt"`
	RevealedColor    int   `json:"revealed"`
	RevealedColorAlt int   `json:"revealed_alt"`
	MineColor        int   `json:"mine"`
	FlagColor        int   `json:"flag"`
	CursorColorFG    int   `json:"cursor_fg"`
	CursorColorBG    int   `json:"cursor_bg"`
	ExplodedColorBG  int   `json:"exploded_bg"`
	NumberColors     []int `json:"numbers"` // index 0 is the color for "1"
}

type ConfigSymbols struct {
	Hidden rune `json:"hidden"`
	Empty  rune `json:"empty"`
	Mine   rune `json:"mine"`
	Flag   rune `json:"flag"`
}

type Theme struct {
	DrawCheckerboard bool          `json:"draw_checkerboard"`
	Colors           ConfigColors  `json:"colors"`
	Symbols          ConfigSymbols `json:"symbols"`
}

// GameConfig holds settings for the game session and its files.
type GameConfig struct {
	SaveFile         string `json:"save_file"`
	HistoryFile      string `json:"history_file"`
	ShowInstructions bool   `json:"show_instructions"`
	TickMillis       int    `json:"tick_ms"`
}

type Config struct {
	Theme Theme      `json:"theme"`
	Game  GameConfig `json:"game"`

	path string
}

// InitConfig loads the config from path, or from the XDG config dirs when
// path is empty, on top of DefaultConfig. A missing file is created with the
// defaults so the user has something to edit.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig
	config.Theme.Colors.NumberColors = append([]int(nil), DefaultConfig.Theme.Colors.NumberColors...)

	if path == "" {
		absPath, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			if absPath, err = xdg.ConfigFile(cfgFile); err != nil {
				return nil, fmt.Errorf("resolve config file: %w", err)
			}
		}
		path = absPath
	}
	config.path = path

	found, err := readCfgFile(path, &config)
	if err != nil {
		return nil, err
	}
	if err := config.resolvePaths(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !found {
		if err := config.Save(); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}
	return &config, nil
}

// resolvePaths fills empty data file paths with their XDG defaults.
func (c *Config) resolvePaths() error {
	var err error
	if c.Game.SaveFile == "" {
		if c.Game.SaveFile, err = xdg.DataFile(saveFile); err != nil {
			return fmt.Errorf("resolve save file: %w", err)
		}
	}
	if c.Game.HistoryFile == "" {
		if c.Game.HistoryFile, err = xdg.DataFile(historyFile); err != nil {
			return fmt.Errorf("resolve history file: %w", err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Hidden, s.Empty, s.Mine, s.Flag} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if len(c.Theme.Colors.NumberColors) != 8 {
		return &InvalidConfig{fmt.Sprintf("numbers needs 8 colors, got %d", len(c.Theme.Colors.NumberColors))}
	}
	if c.Game.TickMillis <= 0 {
		return &InvalidConfig{"tick_ms must be positive"}
	}
	return nil
}

// Save writes the config back to the file it was loaded from, or to the
// user's XDG config dir for a config not built by InitConfig.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = xdg.ConfigFile(cfgFile); err != nil {
			return fmt.Errorf("resolve config file: %w", err)
		}
	}
	if err := saveCfgFile(path, c, 0664); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// LogFile returns the debug log location, creating its directory.
func LogFile() (string, error) {
	return xdg.CacheFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

// readCfgFile decodes filePath into a. found is false when the file does
// not exist.
func readCfgFile(filePath string, a interface{}) (found bool, err error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return true, &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return true, nil
}
