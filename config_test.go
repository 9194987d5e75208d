package main

import (
	"os"
	"testing"
)

// TestParseConfigDefaults checks default configuration values
func TestParseConfigDefaults(t *testing.T) {
	defer func() { Config = Configuration{} }()
	Config = Configuration{}
	if err := parseConfig(""); err != nil {
		t.Fatalf("unable to parse empty config, error %v", err)
	}
	if Config.Port != 8181 {
		t.Errorf("wrong default port: got %d want 8181", Config.Port)
	}
	if Config.ModelFile != "model.json" {
		t.Errorf("wrong default model file: got %s", Config.ModelFile)
	}
	if Config.LimiterPeriod != "100-S" {
		t.Errorf("wrong default limiter rate: got %s", Config.LimiterPeriod)
	}
	if Config.StorageDir != "models" {
		t.Errorf("wrong default storage dir: got %s", Config.StorageDir)
	}
}

// TestParseConfigPortEnv checks that PORT environment provided by PaaS
// host overrides configured port
func TestParseConfigPortEnv(t *testing.T) {
	defer func() {
		os.Unsetenv("PORT")
		Config = Configuration{}
	}()
	Config = Configuration{}
	os.Setenv("PORT", "7777")
	if err := parseConfig(""); err != nil {
		t.Fatalf("unable to parse empty config, error %v", err)
	}
	if Config.Port != 7777 {
		t.Errorf("PORT environment ignored: got %d want 7777", Config.Port)
	}
}

// TestParseConfigFile checks configuration file parsing
func TestParseConfigFile(t *testing.T) {
	defer func() { Config = Configuration{} }()
	Config = Configuration{}
	if err := parseConfig("config-test.json"); err != nil {
		t.Fatalf("unable to parse config file, error %v", err)
	}
	if Config.LimiterPeriod != "1000-S" {
		t.Errorf("wrong limiter rate: got %s want 1000-S", Config.LimiterPeriod)
	}
	if Config.StorageDir != "/tmp/irishub-test" {
		t.Errorf("wrong storage dir: got %s", Config.StorageDir)
	}
	if err := parseConfig("no-such-config.json"); err == nil {
		t.Error("expected error for missing config file")
	}
}
