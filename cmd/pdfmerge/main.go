// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfmerge CLI.
// Implements: prd001-merge, prd002-disk-merge, prd003-fetch,
//             prd004-storage, prd005-history (CLI surface).
// See docs/ARCHITECTURE § Command Interface, § Project Structure.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfmerge/internal/secrets"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds storage credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, the secret value for key
// otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pdfmerge CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfmerge",
	Short: "Merge PDF documents from files, URLs, and batch manifests",
	Long: `pdfmerge combines PDF documents into a single output. Sources can be
local files or http(s) URLs; outputs land on disk under a configured base
directory or in an S3-compatible object store. All PDF parsing and
serialization is delegated to pdfcpu.

Each operation is a subcommand: merge (strict, abort on the first bad
source), batch (manifest-driven jobs with per-source aggregation), info,
history, and serve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfmerge.yaml or ~/.config/pdfmerge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfmerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfmerge"))
		}
	}

	viper.SetEnvPrefix("PDFMERGE")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.user_agent", "pdfmerge/"+version)
	viper.SetDefault("http.max_retries", 5)
	viper.SetDefault("disk.base_dir", ".")
	viper.SetDefault("history.dir", "history")
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.max_upload_bytes", int64(256<<20))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpConfig assembles the fetch-stage settings from viper.
func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:    viper.GetDuration("http.timeout"),
		UserAgent:  viper.GetString("http.user_agent"),
		MaxRetries: viper.GetInt("http.max_retries"),
	}
}

// httpClient builds the client used for remote sources.
func httpClient() *http.Client {
	return &http.Client{Timeout: httpConfig().Timeout}
}

// diskConfig assembles path settings, with command flags overriding the
// config file.
func diskConfig(cmd *cobra.Command) types.DiskConfig {
	cfg := types.DiskConfig{
		BaseDir:          viper.GetString("disk.base_dir"),
		AllowOutsideBase: viper.GetBool("disk.allow_outside_base"),
	}
	if cmd.Flags().Changed("base-dir") {
		cfg.BaseDir, _ = cmd.Flags().GetString("base-dir")
	}
	if cmd.Flags().Changed("allow-outside-base") {
		cfg.AllowOutsideBase, _ = cmd.Flags().GetBool("allow-outside-base")
	}
	return cfg
}

// storageConfig assembles object-store settings; credentials fall back to
// the .secrets/ directory.
func storageConfig() types.StorageConfig {
	return types.StorageConfig{
		Endpoint:  secretDefault("s3-endpoint", viper.GetString("storage.endpoint")),
		AccessKey: secretDefault("s3-access-key", viper.GetString("storage.access_key")),
		SecretKey: secretDefault("s3-secret-key", viper.GetString("storage.secret_key")),
		Bucket:    viper.GetString("storage.bucket"),
		UseSSL:    viper.GetBool("storage.use_ssl"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{Dir: viper.GetString("history.dir")}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
