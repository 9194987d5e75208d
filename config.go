package main

// config module
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Configuration stores server configuration parameters
type Configuration struct {
	// web server parts
	Base      string `json:"base"`       // base URL
	LogFile   string `json:"log_file"`   // server log file
	Port      int    `json:"port"`       // server port number
	Verbose   int    `json:"verbose"`    // verbose output
	StaticDir string `json:"static_dir"` // speficy static dir location

	// server parts
	RootCAs       string   `json:"rootCAs"`      // server Root CAs path
	ServerCrt     string   `json:"server_cert"`  // server certificate
	ServerKey     string   `json:"server_key"`   // server certificate
	DomainNames   []string `json:"domain_names"` // LetsEncrypt domain names
	LimiterPeriod string   `json:"rate"`         // limiter rate value

	// model parts
	ModelFile  string `json:"model_file"`  // default model artifact file
	StorageDir string `json:"storage_dir"` // model artifacts storage directory

	// registry parts
	DBURI  string `json:"db_uri"`  // registry database URI
	DBName string `json:"db_name"` // registry database name
	DBColl string `json:"db_coll"` // registry database collection
}

// Config variable represents configuration object
var Config Configuration

// helper function to parse server configuration file
func parseConfig(configFile string) error {
	// no config file means we run with default values, e.g. on Heroku
	// where only PORT environment is provided
	if configFile != "" {
		data, err := os.ReadFile(filepath.Clean(configFile))
		if err != nil {
			log.Println("Unable to read", err)
			return err
		}
		err = json.Unmarshal(data, &Config)
		if err != nil {
			log.Println("Unable to parse", err)
			return err
		}
	}

	// default values
	if Config.Port == 0 {
		Config.Port = 8181
	}
	// PaaS environment, e.g. Heroku, provides the port to bind to
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			Config.Port = port
		}
	}
	if Config.LimiterPeriod == "" {
		Config.LimiterPeriod = "100-S"
	}
	if Config.ModelFile == "" {
		Config.ModelFile = "model.json"
	}
	if Config.StorageDir == "" {
		Config.StorageDir = "models"
	}
	if Config.DBName == "" {
		Config.DBName = "iris"
	}
	if Config.DBColl == "" {
		Config.DBColl = "registry"
	}
	if Config.StaticDir == "" {
		cdir, err := os.Getwd()
		if err == nil {
			Config.StaticDir = fmt.Sprintf("%s/static", cdir)
		} else {
			Config.StaticDir = "static"
		}
	}
	return nil
}
