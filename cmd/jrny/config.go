package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ShayCichocki/jrny/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify jrny configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/jrny/config.yaml
Project-specific overrides can be placed in .jrny.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		default:
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		}
	},
}

// configKeys lists the keys shown by 'jrny config', in display order.
var configKeys = []string{
	"user.id",
	"storage.path",
	"storage.driver",
	"ai.provider",
	"ai.model",
	"ai.api_key",
	"ai.timeout",
	"ai.aws_region",
	"ai.aws_profile",
	"ai.openai.api_key",
	"ai.openai.model",
	"ai.openai.base_url",
	"log.path",
	"ui.watch",
	"ui.watch_debounce",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		fmt.Printf("%s: %s\n", key, value)
	}
	fmt.Printf("(api key source: %s)\n", config.GetAPIKeySource(cfg))
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "user.id":
		return cfg.User.ID, nil
	case "storage.path":
		return cfg.Storage.Path, nil
	case "storage.driver":
		return cfg.Storage.Driver, nil
	case "ai.provider":
		return cfg.AI.Provider, nil
	case "ai.model":
		return cfg.AI.Model, nil
	case "ai.api_key":
		return config.MaskAPIKey(cfg.AI.APIKey), nil
	case "ai.timeout":
		return cfg.AI.Timeout.String(), nil
	case "ai.aws_region":
		return cfg.AI.AWSRegion, nil
	case "ai.aws_profile":
		return cfg.AI.AWSProfile, nil
	case "ai.openai.api_key":
		return config.MaskAPIKey(cfg.AI.OpenAI.APIKey), nil
	case "ai.openai.model":
		return cfg.AI.OpenAI.Model, nil
	case "ai.openai.base_url":
		return cfg.AI.OpenAI.BaseURL, nil
	case "log.path":
		return cfg.Log.Path, nil
	case "ui.watch":
		return strconv.FormatBool(cfg.UI.Watch), nil
	case "ui.watch_debounce":
		return cfg.UI.WatchDebounce.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "user.id":
		cfg.User.ID = value
	case "storage.path":
		cfg.Storage.Path = value
	case "storage.driver":
		cfg.Storage.Driver = value
	case "ai.provider":
		if err := config.ValidateProvider(value); err != nil {
			return err
		}
		cfg.AI.Provider = value
	case "ai.model":
		cfg.AI.Model = value
	case "ai.api_key":
		// ${VAR} references are expanded at load time.
		if !strings.HasPrefix(value, "${") {
			if err := config.ValidateAPIKey(value); err != nil {
				return err
			}
		}
		cfg.AI.APIKey = value
	case "ai.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for ai.timeout: %w", err)
		}
		cfg.AI.Timeout = d
	case "ai.aws_region":
		cfg.AI.AWSRegion = value
	case "ai.aws_profile":
		cfg.AI.AWSProfile = value
	case "ai.openai.api_key":
		cfg.AI.OpenAI.APIKey = value
	case "ai.openai.model":
		cfg.AI.OpenAI.Model = value
	case "ai.openai.base_url":
		cfg.AI.OpenAI.BaseURL = value
	case "log.path":
		cfg.Log.Path = value
	case "ui.watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for ui.watch: %w", err)
		}
		cfg.UI.Watch = b
	case "ui.watch_debounce":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for ui.watch_debounce: %w", err)
		}
		cfg.UI.WatchDebounce = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
