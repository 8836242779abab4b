// cmd/export/main.go
//
// A small read-only server over the invoice export bucket: list archived
// exports and download individual files. Runs separately from the main API so
// the bucket can be exposed on an internal port only.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/arisathang/Stock-management/internal/config"
	"github.com/arisathang/Stock-management/internal/storage"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

type exportServer struct {
	store storage.ObjectStorage
}

func (s *exportServer) listExports(w http.ResponseWriter, r *http.Request) {
	objects, err := s.store.ListObjects(r.Context(), storage.ExportPrefix)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"exports": objects})
}

func (s *exportServer) downloadExport(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if strings.Contains(key, "..") {
		http.Error(w, "invalid key", http.StatusBadRequest)
		return
	}

	data, err := s.store.DownloadObject(r.Context(), storage.ExportPrefix+key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	w.Write(data)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if !cfg.Storage.Enabled {
		log.Fatal("export server requires STORAGE_ENABLED=true")
	}

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	srv := &exportServer{store: store}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/exports", srv.listExports).Methods("GET")
	r.HandleFunc("/exports/{key:.+}", srv.downloadExport).Methods("GET")

	port := os.Getenv("EXPORT_SERVER_PORT")
	if port == "" {
		port = "8081"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Export server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
