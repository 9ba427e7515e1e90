// Config loading for the tableside CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyTables        = "tables"
	cfgKeySeatsPerTable = "seats_per_table"
	cfgKeyRosterPath    = "roster_path"
	cfgKeyMenuPath      = "menu_path"
	cfgKeyTablePolicy   = "table_policy"
	cfgKeyLedger        = "ledger"
	cfgKeyLogLevel      = "log_level"
)

// envPrefix makes every key overridable, for example TABLESIDE_TABLES=12.
const envPrefix = "TABLESIDE"

// loadConfig reads config.yaml from configDir with Viper, layered over the
// defaults. A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyTables, def.Tables)
	v.SetDefault(cfgKeySeatsPerTable, def.SeatsPerTable)
	v.SetDefault(cfgKeyRosterPath, def.RosterPath)
	v.SetDefault(cfgKeyMenuPath, def.MenuPath)
	v.SetDefault(cfgKeyTablePolicy, def.TablePolicy)
	v.SetDefault(cfgKeyLedger, def.Ledger)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
