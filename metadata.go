package main

// metadata module provides model registry on top of MongoDB,
// the registry is optional and enabled when db_uri is configured
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"gopkg.in/mgo.v2/bson"
)

// MetaData represents model registry database object
type MetaData struct {
	DBName string
	DBColl string
}

// Enabled tells if registry database is configured
func (m *MetaData) Enabled() bool {
	return Config.DBURI != ""
}

// Insert inserts record into registry database
func (m *MetaData) Insert(rec Record) error {
	records := []Record{rec}
	err := MongoUpsert(m.DBName, m.DBColl, records)
	return err
}

// Remove removes given model from registry database
func (m *MetaData) Remove(model string) error {
	spec := bson.M{"model": model}
	err := MongoRemove(m.DBName, m.DBColl, spec)
	return err
}

// Records retrieves records from underlying registry database
func (m *MetaData) Records(model, mlType, version string) ([]Record, error) {
	spec := bson.M{}
	if model != "" {
		spec["model"] = model
	}
	if version != "" {
		spec["version"] = version
	}
	if mlType != "" {
		spec["type"] = mlType
	}
	records, err := MongoGet(m.DBName, m.DBColl, spec, 0, -1)
	return records, err
}
