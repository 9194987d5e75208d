package main

// server module
//
// Copyright (c) 2024 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"crypto/tls"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/uptrace/bunrouter"
)

// metadata represents model registry instance
var metadata *MetaData

// content is our static web server content.
//
//go:embed static
var StaticFs embed.FS

// bunrouter implementation of the compatible (with net/http) router handlers
func bunRouter() *bunrouter.CompatRouter {
	router := bunrouter.New(
		bunrouter.Use(bunrouterLoggingMiddleware),
		bunrouter.Use(bunrouterLimitMiddleware),
	).Compat()
	base := Config.Base
	router.GET(base+"/", IndexHandler)
	router.GET(base+"/favicon.ico", FaviconHandler)

	// prediction APIs
	router.POST(base+"/predict", PredictHandler)
	router.GET(base+"/model/:model/predict", PredictHandler)
	router.POST(base+"/model/:model/predict", PredictHandler)

	// model artifact APIs
	router.GET(base+"/model/:model", ModelHandler)
	router.DELETE(base+"/model/:model", DeleteHandler)
	router.POST(base+"/model/:model/upload", UploadHandler)
	router.GET(base+"/model/:model/download", DownloadHandler)

	// web APIs
	router.GET(base+"/status", StatusHandler)
	router.GET(base+"/docs", DocsHandler)
	router.GET(base+"/models", ModelsHandler)

	// static handlers
	for _, dir := range []string{"js", "css", "images"} {
		filesFS, err := fs.Sub(StaticFs, "static/"+dir)
		if err != nil {
			panic(err)
		}
		m := fmt.Sprintf("%s/%s", Config.Base, dir)
		fileServer := http.FileServer(http.FS(filesFS))
		hdlr := http.StripPrefix(m, fileServer)
		router.Router.GET(m+"/*path", bunrouter.HTTPHandler(hdlr))
	}

	// static model download area
	bpath := fmt.Sprintf("%s/bundles", base)
	hdlr := http.StripPrefix(bpath, http.FileServer(http.Dir(Config.StorageDir)))
	router.Router.GET(base+"/bundles/*path", bunrouter.HTTPHandler(hdlr))

	return router
}

// Server implements IrisHub server
func Server() {

	// initialize server middleware
	initLimiter(Config.LimiterPeriod)

	// initialize model registry
	metadata = &MetaData{DBName: Config.DBName, DBColl: Config.DBColl}

	// setup server router
	router := bunRouter()

	// start HTTPs server
	if len(Config.DomainNames) > 0 {
		server := LetsEncryptServer(Config.DomainNames...)
		server.Handler = router
		log.Println("Start HTTPs server with LetsEncrypt", Config.DomainNames)
		log.Fatal(server.ListenAndServeTLS("", ""))
	} else if Config.ServerCrt != "" && Config.ServerKey != "" {
		tlsConfig := &tls.Config{
			RootCAs: RootCAs(),
		}
		server := &http.Server{
			Addr:      ":https",
			TLSConfig: tlsConfig,
			Handler:   router,
		}
		log.Printf("Start HTTPs server with %s and %s on :%d", Config.ServerCrt, Config.ServerKey, Config.Port)
		log.Fatal(server.ListenAndServeTLS(Config.ServerCrt, Config.ServerKey))
	} else {
		log.Printf("Start HTTP server on :%d", Config.Port)
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", Config.Port), router))
	}
}
