package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter builds the inspection API. The handlers serve the snapshot
// the render loop publishes with Publish, never the live scene.
func NewRouter(webPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerSceneTree)
	r.HandleFunc("/json/scene/{node}", HandlerSceneNode)
	r.HandleFunc("/dump/scene", HandlerDumpScene)
	r.HandleFunc("/ws/status", HandlerStatusWs)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	return r
}

func StartServer(addr string, webPath string) error {
	r := NewRouter(webPath)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
