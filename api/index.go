package handler

import (
	"naturekids/config"
	"naturekids/di"
	"naturekids/shared/logger"
	"naturekids/transport/http"
	nethttp "net/http"
	"sync"
)

var (
	server *http.HTTP
	once   sync.Once
)

// Handler is the serverless entry point; the service graph is built once per instance.
func Handler(w nethttp.ResponseWriter, r *nethttp.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
