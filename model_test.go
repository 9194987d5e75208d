package main

import (
	"testing"
)

// TestLoadModel checks loading of the default model artifact
func TestLoadModel(t *testing.T) {
	model, err := loadModel("model.json")
	if err != nil {
		t.Fatalf("unable to load model artifact, error %v", err)
	}
	if model.Model != "iris" {
		t.Errorf("wrong model name: got %s want iris", model.Model)
	}
	if model.Type != "DecisionTree" {
		t.Errorf("wrong model type: got %s want DecisionTree", model.Type)
	}
	if len(model.Classes) != 3 {
		t.Errorf("wrong number of classes: got %d want 3", len(model.Classes))
	}
	if len(model.Features) != 4 {
		t.Errorf("wrong number of features: got %d want 4", len(model.Features))
	}
}

// TestModelPredict checks predictions of the default model artifact
// against known iris measurements
func TestModelPredict(t *testing.T) {
	model, err := loadModel("model.json")
	if err != nil {
		t.Fatalf("unable to load model artifact, error %v", err)
	}
	x := [][]float64{
		{5.1, 3.5, 1.4, 0.2}, // setosa
		{6.0, 2.9, 4.5, 1.3}, // versicolor
		{6.3, 3.3, 6.0, 2.5}, // virginica
	}
	expect := []int{0, 1, 2}
	predictions := model.Predict(x)
	if len(predictions) != len(expect) {
		t.Fatalf("wrong number of predictions: got %d want %d", len(predictions), len(expect))
	}
	for i, p := range predictions {
		if p != expect[i] {
			t.Errorf("row %d: got class %d want %d", i, p, expect[i])
		}
	}
}

// TestIrisPrediction checks the prediction function with the default artifact
func TestIrisPrediction(t *testing.T) {
	initTestServer()
	rec, err := irisPrediction(5.1, 3.5, 1.4, 0.2)
	if err != nil {
		t.Fatalf("unable to get prediction, error %v", err)
	}
	if rec.PredictedClass != 0 {
		t.Errorf("wrong predicted class: got %d want 0", rec.PredictedClass)
	}
}

// TestLoadModelErrors checks error handling of the model loader
func TestLoadModelErrors(t *testing.T) {
	if _, err := loadModel("no-such-file.json"); err == nil {
		t.Error("expected error for missing artifact file")
	}
	if _, err := decodeModel([]byte("not a model")); err == nil {
		t.Error("expected error for corrupt artifact data")
	}
	if _, err := decodeModel([]byte(`{"model": "x", "type": "DecisionTree"}`)); err == nil {
		t.Error("expected error for artifact without tree nodes")
	}
	if _, err := decodeModel([]byte(`{"type": "Unknown", "nodes": [{"feature": -1, "class": 0}]}`)); err == nil {
		t.Error("expected error for unsupported model type")
	}
	// node refers to itself, the tree walk would never terminate
	data := `{"type": "DecisionTree", "features": ["a", "b", "c", "d"], "nodes": [{"feature": 0, "threshold": 1, "left": 0, "right": 0, "class": -1}]}`
	if _, err := decodeModel([]byte(data)); err == nil {
		t.Error("expected error for cyclic tree nodes")
	}
	// artifact declares five features while prediction rows carry four
	// values, serving it would index beyond the input row
	data = `{"type": "DecisionTree", "features": ["a", "b", "c", "d", "e"], "nodes": [{"feature": 4, "threshold": 1, "left": 1, "right": 2, "class": -1}, {"feature": -1, "class": 0}, {"feature": -1, "class": 1}]}`
	if _, err := decodeModel([]byte(data)); err == nil {
		t.Error("expected error for artifact with wrong number of features")
	}
	data = `{"type": "DecisionTree", "features": ["a", "b", "c"], "nodes": [{"feature": -1, "class": 0}]}`
	if _, err := decodeModel([]byte(data)); err == nil {
		t.Error("expected error for artifact with too few features")
	}
}
