package main

// model module provides model artifact loader and inference functions
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TreeNode represents single node of a serialized decision tree,
// a negative feature index marks a leaf node
type TreeNode struct {
	Feature   int     `json:"feature"`   // feature index used for the split
	Threshold float64 `json:"threshold"` // split threshold
	Left      int     `json:"left"`      // left child index (feature <= threshold)
	Right     int     `json:"right"`     // right child index (feature > threshold)
	Class     int     `json:"class"`     // predicted class index of a leaf node
}

// Model represents pre-trained classifier artifact
type Model struct {
	Model    string     `json:"model"`    // model name
	Type     string     `json:"type"`     // model type, e.g. DecisionTree
	Version  string     `json:"version"`  // model version
	Features []string   `json:"features"` // ordered feature names
	Classes  []string   `json:"classes"`  // class labels
	Nodes    []TreeNode `json:"nodes"`    // flattened decision tree nodes
}

// Predict returns predicted class indexes for given input matrix,
// one prediction per input row
func (m *Model) Predict(x [][]float64) []int {
	var predictions []int
	for _, row := range x {
		predictions = append(predictions, m.predictRow(row))
	}
	return predictions
}

// helper function to walk the tree for a single input row
func (m *Model) predictRow(row []float64) int {
	idx := 0
	for {
		node := m.Nodes[idx]
		if node.Feature < 0 {
			return node.Class
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// helper function to validate model artifact structure
func validateModel(model *Model) error {
	if model.Type == "" {
		return errors.New(fmt.Sprintf("model type is missing, please provide one of %+v", ModelTypes))
	}
	if !InList(model.Type, ModelTypes) {
		return errors.New(fmt.Sprintf("model type %s is not supported, please provide one of %+v", model.Type, ModelTypes))
	}
	if len(model.Features) != len(IrisFeatures) {
		return errors.New(fmt.Sprintf("model artifact must use %d features %+v, got %d", len(IrisFeatures), IrisFeatures, len(model.Features)))
	}
	if len(model.Nodes) == 0 {
		return errors.New("model artifact contains no tree nodes")
	}
	nfeatures := len(model.Features)
	nnodes := len(model.Nodes)
	for i, node := range model.Nodes {
		if node.Feature >= nfeatures {
			return errors.New(fmt.Sprintf("node %d refers to unknown feature index %d", i, node.Feature))
		}
		if node.Feature >= 0 {
			if node.Left < 0 || node.Left >= nnodes || node.Right < 0 || node.Right >= nnodes {
				return errors.New(fmt.Sprintf("node %d refers to out of range child node", i))
			}
			if node.Left <= i || node.Right <= i {
				return errors.New(fmt.Sprintf("node %d children do not advance tree walk", i))
			}
		}
	}
	return nil
}

// helper function to decode and validate model artifact data
func decodeModel(data []byte) (*Model, error) {
	var model Model
	err := json.Unmarshal(data, &model)
	if err != nil {
		return nil, err
	}
	if err := validateModel(&model); err != nil {
		return nil, err
	}
	return &model, nil
}

// loadModel reads model artifact from given file
func loadModel(fname string) (*Model, error) {
	data, err := os.ReadFile(filepath.Clean(fname))
	if err != nil {
		return nil, err
	}
	return decodeModel(data)
}

// irisPrediction predicts iris class for given sepal length, sepal width,
// petal length and petal width using the default model artifact
func irisPrediction(sepalLength, sepalWidth, petalLength, petalWidth float64) (PredictionResponse, error) {
	return modelPrediction(Config.ModelFile, sepalLength, sepalWidth, petalLength, petalWidth)
}

// modelPrediction predicts iris class using model artifact from given file,
// the artifact is loaded fresh on every call
func modelPrediction(fname string, sepalLength, sepalWidth, petalLength, petalWidth float64) (PredictionResponse, error) {
	var rec PredictionResponse
	model, err := loadModel(fname)
	if err != nil {
		return rec, err
	}
	// construct the 2D matrix of values Predict is expecting
	x := [][]float64{{sepalLength, sepalWidth, petalLength, petalWidth}}
	// get a list of predictions and select only 1st
	predictions := model.Predict(x)
	rec = PredictionResponse{PredictedClass: predictions[0]}
	return rec, nil
}
