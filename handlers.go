package main

// handlers module holds all HTTP handlers functions
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bunrouter"
)

// HTTPResponse represents HTTP JSON response
type HTTPResponse struct {
	Method         string `json:"method"`           // HTTP method
	Path           string `json:"path"`             // URL path
	UserAgent      string `json:"user_agent"`       // http user-agent field
	XForwardedHost string `json:"x_forwarded_host"` // http.Request X-Forwarded-Host
	XForwardedFor  string `json:"x_forwarded_for"`  // http.Request X-Forwarded-For
	RemoteAddr     string `json:"remote_addr"`      // http.Request remote address
	HTTPCode       int    `json:"http_code"`        // HTTP error code
	Code           int    `json:"code"`             // server status code
	Reason         string `json:"reason"`           // error code reason
	Timestamp      string `json:"timestamp"`        // timestamp of the error
	Response       string `json:"response"`         // response message
	Error          string `json:"error"`            // error message
	Data           string `json:"data"`             // HTTP response data
	ElapsedTime    string `json:"elapsed_time"`     // elapsed time of HTTP request
}

// helper function to get model name from http request
func getModel(r *http.Request) (string, bool) {
	params := bunrouter.ParamsFromContext(r.Context())
	model, ok := params.Map()["model"]
	return model, ok
}

// helper function to parse given template and return HTML page
func tmplPage(tmpl string, tmplData TmplRecord) string {
	if tmplData == nil {
		tmplData = make(TmplRecord)
	}
	var templates Templates
	page := templates.Tmpl(tmpl, tmplData)
	return page
}

// helper function to generate JSON response
func httpResponse(w http.ResponseWriter, r *http.Request, tmpl TmplRecord) {
	httpCode := tmpl.GetInt("HttpCode")
	code := tmpl.GetInt("Code")
	content := tmpl.GetString("Content")
	if r.Header.Get("Accept") != "application/json" {
		top := tmpl.GetString("Top")
		bottom := tmpl.GetString("Bottom")
		tfile := tmpl.GetString("Template")
		page := tmplPage(tfile, tmpl)
		if httpCode != 0 {
			w.WriteHeader(httpCode)
		}
		if tfile == "index.tmpl" {
			w.Write([]byte(page))
		} else {
			w.Write([]byte(top + page + bottom))
		}
		return
	}
	if httpCode == 0 {
		httpCode = http.StatusOK
	}
	hrec := HTTPResponse{
		Method:         r.Method,
		Path:           r.RequestURI,
		RemoteAddr:     r.RemoteAddr,
		XForwardedFor:  r.Header.Get("X-Forwarded-For"),
		XForwardedHost: r.Header.Get("X-Forwarded-Host"),
		UserAgent:      r.Header.Get("User-agent"),
		Timestamp:      time.Now().String(),
		Code:           code,
		Reason:         errorMessage(code),
		HTTPCode:       httpCode,
		Response:       content,
		Error:          tmpl.GetError(),
		Data:           tmpl.GetString("Data"),
		ElapsedTime:    tmpl.GetElapsedTime(),
	}
	if Config.Verbose > 0 {
		log.Printf("HTTPResponse: %+v", hrec)
	}
	data, err := json.MarshalIndent(hrec, "", "   ")
	if err != nil {
		data = []byte(err.Error())
	}
	w.WriteHeader(httpCode)
	w.Write([]byte(data))
}

// helper function to provide standard HTTP error reply
func httpError(w http.ResponseWriter, r *http.Request, tmpl TmplRecord, code int, err error, httpCode int) {
	tmpl["Code"] = code
	tmpl["Error"] = err
	tmpl["HttpCode"] = httpCode
	tmpl["Content"] = err.Error()
	tmpl["Template"] = "error.tmpl"
	httpResponse(w, r, tmpl)
}

// helper function to make initial template struct
func makeTmpl(title string) TmplRecord {
	tmpl := make(TmplRecord)
	tmpl["Title"] = title
	tmpl["Base"] = Config.Base
	tmpl["ServerInfo"] = info()
	tmpl["Top"] = tmplPage("top.tmpl", tmpl)
	tmpl["Bottom"] = tmplPage("bottom.tmpl", tmpl)
	tmpl["StartTime"] = time.Now()
	return tmpl
}

// helper function to check if HTTP request contains form-data
func formData(r *http.Request) bool {
	for key, values := range r.Header {
		if strings.ToLower(key) == "content-type" {
			for _, v := range values {
				if strings.Contains(strings.ToLower(v), "form-data") {
					return true
				}
			}
		}
	}
	return false
}

// helper function to extract single iris measurement from HTTP form values
func formFloat(r *http.Request, key string) (*float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// helper function to extract iris measurements from HTTP form values
func formFeatures(r *http.Request) (PredictionRequest, error) {
	var req PredictionRequest
	var err error
	if req.SepalLength, err = formFloat(r, "sepal_length"); err != nil {
		return req, err
	}
	if req.SepalWidth, err = formFloat(r, "sepal_width"); err != nil {
		return req, err
	}
	if req.PetalLength, err = formFloat(r, "petal_length"); err != nil {
		return req, err
	}
	if req.PetalWidth, err = formFloat(r, "petal_width"); err != nil {
		return req, err
	}
	return req, nil
}

// helper function to decode iris measurements from JSON HTTP request body
func jsonFeatures(r *http.Request) (PredictionRequest, error) {
	var req PredictionRequest
	body := io.Reader(r.Body)
	if r.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(r.Body)
		if err != nil {
			return req, err
		}
		gz := GzipReader{reader, r.Body}
		defer gz.Close()
		body = gz
	}
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	return req, err
}

// FaviconHandler serves favicon from the static area
func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, fmt.Sprintf("%s/images/favicon.ico", Config.StaticDir))
}

// IndexHandler serves the main page
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub")
	tmpl["Template"] = "index.tmpl"
	httpResponse(w, r, tmpl)
}

// PredictHandler handles prediction requests, either against the default
// model artifact (POST /predict) or against a named one from the storage
// area (/model/:model/predict)
func PredictHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub predict")

	var req PredictionRequest
	var err error
	if r.Method == "GET" {
		req, err = formFeatures(r)
	} else {
		req, err = jsonFeatures(r)
	}
	if err != nil {
		httpError(w, r, tmpl, BadRequest, err, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		httpError(w, r, tmpl, BadRequest, err, http.StatusBadRequest)
		return
	}

	var rec PredictionResponse
	if model, ok := getModel(r); ok {
		// prediction against a named artifact from the storage area
		if Config.Verbose > 0 {
			log.Printf("get prediction from model %s", model)
		}
		rec, err = modelPrediction(modelPath(model), *req.SepalLength, *req.SepalWidth, *req.PetalLength, *req.PetalWidth)
	} else {
		rec, err = irisPrediction(*req.SepalLength, *req.SepalWidth, *req.PetalLength, *req.PetalWidth)
	}
	if err != nil {
		httpError(w, r, tmpl, ModelError, err, http.StatusInternalServerError)
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		httpError(w, r, tmpl, JsonMarshal, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ModelHandler provides meta-data of a single named model artifact
func ModelHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub model")
	model, ok := getModel(r)
	if !ok {
		httpError(w, r, tmpl, BadRequest, errors.New("no model name is provided"), http.StatusBadRequest)
		return
	}
	if Config.Verbose > 0 {
		log.Printf("get model %s meta-data", model)
	}
	fname := modelPath(model)
	if _, err := os.Stat(fname); err != nil {
		// fall back to the default artifact if its name matches
		fname = Config.ModelFile
	}
	rec, err := artifactRecord(fname)
	if err != nil || rec.Model != model {
		msg := fmt.Sprintf("no artifact found for model %s", model)
		httpError(w, r, tmpl, ModelError, errors.New(msg), http.StatusBadRequest)
		return
	}
	data, err := json.Marshal([]Record{rec})
	if err != nil {
		httpError(w, r, tmpl, JsonMarshal, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ModelsHandler provides information about available model artifacts
func ModelsHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub models")
	records := scanModels()
	if metadata.Enabled() {
		recs, err := metadata.Records("", "", "")
		if err != nil {
			msg := fmt.Sprintf("unable to get registry records, error=%v", err)
			httpError(w, r, tmpl, DatabaseError, errors.New(msg), http.StatusInternalServerError)
			return
		}
		// registry may hold records of artifacts no longer in the
		// storage area, list them after the on-disk ones
		var names []string
		for _, rec := range records {
			names = append(names, rec.Model)
		}
		for _, rec := range recs {
			if !InList(rec.Model, names) {
				records = append(records, rec)
			}
		}
	}
	if r.Header.Get("Accept") == "application/json" {
		data, err := json.Marshal(records)
		if err != nil {
			msg := fmt.Sprintf("unable to marshal data, error=%v", err)
			httpError(w, r, tmpl, JsonMarshal, errors.New(msg), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}
	tmpl["Records"] = records
	tmpl["Template"] = "models.tmpl"
	httpResponse(w, r, tmpl)
}

// UploadHandler handles upload action of model artifact to the storage area
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub upload")
	model, ok := getModel(r)
	if !ok {
		httpError(w, r, tmpl, BadRequest, errors.New("no model name is provided"), http.StatusBadRequest)
		return
	}
	// check if we provided with proper form data
	if !formData(r) {
		httpError(w, r, tmpl, BadRequest, errors.New("unable to get form data"), http.StatusBadRequest)
		return
	}
	rec, err := saveArtifact(model, r)
	if err != nil {
		httpError(w, r, tmpl, InsertError, err, http.StatusBadRequest)
		return
	}
	content := fmt.Sprintf("model %s has been successfully uploaded", rec.Model)
	tmpl["Content"] = template.HTML(content)
	tmpl["Data"] = rec.ToJSON()
	tmpl["Template"] = "success.tmpl"
	httpResponse(w, r, tmpl)
}

// DeleteHandler handles DELETE HTTP requests, this request will
// remove model artifact from the storage area and registry
func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub delete")
	model, ok := getModel(r)
	if !ok {
		httpError(w, r, tmpl, BadRequest, errors.New("no model name is provided"), http.StatusBadRequest)
		return
	}
	if Config.Verbose > 0 {
		log.Printf("delete model %s", model)
	}
	if err := removeArtifact(model); err != nil {
		httpError(w, r, tmpl, DatabaseError, err, http.StatusInternalServerError)
		return
	}
	content := fmt.Sprintf("model %s has been successfully removed", model)
	tmpl["Content"] = template.HTML(content)
	tmpl["Template"] = "success.tmpl"
	httpResponse(w, r, tmpl)
}

// DownloadHandler redirects to the artifact bundle in the storage area
func DownloadHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub download")
	model, ok := getModel(r)
	if !ok {
		httpError(w, r, tmpl, BadRequest, errors.New("no model name is provided"), http.StatusBadRequest)
		return
	}
	fname := modelPath(model)
	if _, err := os.Stat(fname); err != nil {
		msg := fmt.Sprintf("no artifact found for model %s", model)
		httpError(w, r, tmpl, FileIOError, errors.New(msg), http.StatusBadRequest)
		return
	}
	downloadURL := fmt.Sprintf("%s/bundles/%s.json", Config.Base, model)
	if Config.Verbose > 0 {
		log.Println("download", downloadURL)
	}
	http.Redirect(w, r, downloadURL, http.StatusSeeOther)
}

// DocsHandler handles server documentation page
func DocsHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub documentation")
	fname := fmt.Sprintf("%s/md/docs.md", Config.StaticDir)
	content, err := mdToHTML(fname)
	if err != nil {
		httpError(w, r, tmpl, FileIOError, err, http.StatusInternalServerError)
		return
	}
	tmpl["Content"] = template.HTML(content)
	tmpl["Template"] = "docs.tmpl"
	httpResponse(w, r, tmpl)
}

// StatusHandler handles status of the server
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := makeTmpl("IrisHub status")
	records := scanModels()
	content := fmt.Sprintf("server status: active, default artifact %s, %d artifact(s) available", Config.ModelFile, len(records))
	tmpl["Content"] = content
	tmpl["Models"] = len(records)
	tmpl["Template"] = "status.tmpl"
	httpResponse(w, r, tmpl)
}
