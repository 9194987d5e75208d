package main

// data module holds all data representations used in our package
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"encoding/json"
	"errors"
	"strings"
)

// ModelTypes defines supported model artifact types
var ModelTypes = []string{"DecisionTree"}

// IrisFeatures defines ordered iris measurements every model artifact
// must accept, prediction rows always carry exactly these values
var IrisFeatures = []string{"sepal_length", "sepal_width", "petal_length", "petal_width"}

// PredictionRequest represents iris measurements sent to the predict API.
// All four fields must be present, pointers distinguish a missing field
// from a zero measurement.
type PredictionRequest struct {
	SepalLength *float64 `json:"sepal_length"` // sepal length in cm
	SepalWidth  *float64 `json:"sepal_width"`  // sepal width in cm
	PetalLength *float64 `json:"petal_length"` // petal length in cm
	PetalWidth  *float64 `json:"petal_width"`  // petal width in cm
}

// Validate checks that all measurement fields are present
func (r *PredictionRequest) Validate() error {
	var missing []string
	if r.SepalLength == nil {
		missing = append(missing, "sepal_length")
	}
	if r.SepalWidth == nil {
		missing = append(missing, "sepal_width")
	}
	if r.PetalLength == nil {
		missing = append(missing, "petal_length")
	}
	if r.PetalWidth == nil {
		missing = append(missing, "petal_width")
	}
	if len(missing) > 0 {
		return errors.New("missing fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// PredictionResponse represents predict API response
type PredictionResponse struct {
	PredictedClass int `json:"predicted_class"` // predicted class index
}

// Record define model registry record
type Record struct {
	Model       string   `json:"model"`       // model name
	Type        string   `json:"type"`        // model type
	Version     string   `json:"version"`     // model version
	Description string   `json:"description"` // model description
	Classes     []string `json:"classes"`     // class labels
	Bundle      string   `json:"bundle"`      // model bundle file
}

// ToJSON provides string representation of Record
func (r Record) ToJSON() string {
	// create pretty JSON representation of the record
	data, _ := json.MarshalIndent(r, "", "    ")
	return string(data)
}
