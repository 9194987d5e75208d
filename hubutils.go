package main

// hub utils module provides model artifact storage functions
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// helper function to construct artifact file name for given model name
func modelPath(model string) string {
	return filepath.Join(Config.StorageDir, fmt.Sprintf("%s.json", model))
}

// helper function to construct registry record for given artifact file
func artifactRecord(fname string) (Record, error) {
	var rec Record
	model, err := loadModel(fname)
	if err != nil {
		return rec, err
	}
	name := model.Model
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(fname), ".json")
	}
	rec = Record{
		Model:   name,
		Type:    model.Type,
		Version: model.Version,
		Classes: model.Classes,
		Bundle:  filepath.Base(fname),
	}
	return rec, nil
}

// scanModels collects registry records for the default model artifact
// and all artifacts found in the storage area
func scanModels() []Record {
	var records []Record
	if rec, err := artifactRecord(Config.ModelFile); err == nil {
		records = append(records, rec)
	} else if Config.Verbose > 0 {
		log.Printf("skip default artifact %s, error %v", Config.ModelFile, err)
	}
	files, err := filepath.Glob(filepath.Join(Config.StorageDir, "*.json"))
	if err != nil {
		return records
	}
	for _, fname := range files {
		rec, err := artifactRecord(fname)
		if err != nil {
			log.Printf("skip artifact %s, error %v", fname, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// saveArtifact stores model artifact from HTTP multipart form into the
// storage area and registers it in the registry database when configured
func saveArtifact(model string, r *http.Request) (Record, error) {
	var rec Record
	// parse incoming HTTP request multipart form
	err := r.ParseMultipartForm(32 << 20) // maxMemory
	if err != nil {
		return rec, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return rec, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return rec, err
	}
	// validate artifact before storing it
	m, err := decodeModel(data)
	if err != nil {
		return rec, err
	}
	err = os.MkdirAll(Config.StorageDir, 0755)
	if err != nil {
		return rec, err
	}
	fname := modelPath(model)
	err = os.WriteFile(fname, data, 0644)
	if err != nil {
		return rec, err
	}
	rec = Record{
		Model:       model,
		Type:        m.Type,
		Version:     m.Version,
		Classes:     m.Classes,
		Description: r.FormValue("description"),
		Bundle:      filepath.Base(fname),
	}
	if metadata.Enabled() {
		if err := metadata.Insert(rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// removeArtifact removes model artifact from the storage area and from
// the registry database when configured
func removeArtifact(model string) error {
	fname := modelPath(model)
	if _, err := os.Stat(fname); err != nil {
		return errors.New(fmt.Sprintf("no artifact found for model %s", model))
	}
	if err := os.Remove(fname); err != nil {
		return err
	}
	if metadata.Enabled() {
		return metadata.Remove(model)
	}
	return nil
}
