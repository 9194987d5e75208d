package main

// templates module
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"
)

// TmplRecord represent template record
type TmplRecord map[string]interface{}

// GetString converts given value for provided key to string data-type
func (t TmplRecord) GetString(key string) string {
	if v, ok := t[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// GetInt converts given value for provided key to int data-type
func (t TmplRecord) GetInt(key string) int {
	if v, ok := t[key]; ok {
		if val, err := strconv.Atoi(fmt.Sprintf("%v", v)); err == nil {
			return val
		}
	}
	return 0
}

// GetError returns error string
func (t TmplRecord) GetError() string {
	if v, ok := t["Error"]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// GetElapsedTime returns elapsed time since template record creation
func (t TmplRecord) GetElapsedTime() string {
	if v, ok := t["StartTime"]; ok {
		if start, ok := v.(time.Time); ok {
			return time.Since(start).String()
		}
	}
	return ""
}

// Templates structure
type Templates struct {
	html string
}

// Tmpl method for Templates structure
func (q Templates) Tmpl(tfile string, tmplData map[string]interface{}) string {
	if q.html != "" {
		return q.html
	}

	// get template from embed.FS
	filenames := []string{"static/templates/" + tfile}
	t := template.Must(template.New(tfile).ParseFS(StaticFs, filenames...))
	buf := new(bytes.Buffer)
	err := t.Execute(buf, tmplData)
	if err != nil {
		panic(err)
	}
	q.html = buf.String()
	return q.html
}
