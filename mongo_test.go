package main

import (
	"testing"
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// TestMongoRegistry checks model registry records in MongoDB,
// the test is skipped when no MongoDB instance is available
func TestMongoRegistry(t *testing.T) {
	initTestServer()
	dburi := "mongodb://localhost:27017"
	session, err := mgo.DialWithTimeout(dburi, time.Second)
	if err != nil {
		t.Skipf("MongoDB is not available, error %v", err)
	}
	session.Close()
	Config.DBURI = dburi
	defer func() { Config.DBURI = "" }()

	// our db attributes
	dbname := "iris"
	collname := "registry"

	// remove all records in test collection
	MongoRemove(dbname, collname, bson.M{})

	// insert one record
	rec := Record{
		Model:       "iris",
		Type:        "DecisionTree",
		Version:     "1.0.0",
		Description: "iris classifier",
		Classes:     []string{"setosa", "versicolor", "virginica"},
		Bundle:      "model.json",
	}
	if err := MongoInsert(dbname, collname, []Record{rec}); err != nil {
		t.Fatalf("unable to insert record, error %v", err)
	}

	// look-up one record
	spec := bson.M{"model": "iris"}
	records, err := MongoGet(dbname, collname, spec, 0, 1)
	if err != nil {
		t.Errorf("unable to find records using spec '%s', error %v", spec, err)
	}
	if len(records) != 1 {
		t.Errorf("wrong number of records using spec '%s', records %+v", spec, records)
	}

	// registry look-up by model, type and version
	records, err = metadata.Records("iris", "DecisionTree", "1.0.0")
	if err != nil {
		t.Errorf("unable to get registry records, error %v", err)
	}
	if len(records) != 1 || records[0].Bundle != "model.json" {
		t.Errorf("wrong registry records %+v", records)
	}
	records, err = metadata.Records("no-such-model", "", "")
	if err != nil || len(records) != 0 {
		t.Errorf("unexpected registry records %+v, error %v", records, err)
	}

	// upsert should not create duplicates
	if err := MongoUpsert(dbname, collname, []Record{rec}); err != nil {
		t.Errorf("unable to upsert record, error %v", err)
	}
	records, err = MongoGet(dbname, collname, bson.M{}, 0, -1)
	if err != nil || len(records) != 1 {
		t.Errorf("wrong number of records after upsert, records %+v, error %v", records, err)
	}

	// remove records
	if err := MongoRemove(dbname, collname, spec); err != nil {
		t.Errorf("unable to remove records, error %v", err)
	}
}
