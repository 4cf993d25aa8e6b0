// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfmerge/internal/history"
	"github.com/pdiddy/pdfmerge/internal/merge"
	"github.com/pdiddy/pdfmerge/internal/storage"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve merge operations over HTTP",
	Long: `Serve exposes the merge core over HTTP:

  POST /merge          multipart form, field "files": merged PDF response
  POST /merge?store=1  same, but the result is stored; responds with the id
  GET  /documents/:id  download a stored merge result
  GET  /healthz        liveness probe

Storing and downloading require a configured object store.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

// server carries the handlers' collaborators; storage may be nil when no
// object store is configured, history when the ledger could not be opened.
type server struct {
	store     *storage.Client
	history   *history.Store
	maxUpload int64
}

// record appends one operation to the shared ledger. Best-effort: a ledger
// problem warns and never fails the request that produced the record.
func (s *server) record(rec types.MergeRecord) {
	if s.history == nil {
		fmt.Fprintf(os.Stderr, "warning: no history ledger; merge %s not recorded\n", rec.ID)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.history.Record(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record merge: %v\n", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("serve.addr")
	}

	srv := &server{maxUpload: viper.GetInt64("serve.max_upload_bytes")}

	// One store for the server's lifetime; handlers share it.
	ledger, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history ledger: %v\n", err)
	} else {
		srv.history = ledger
		defer ledger.Close()
	}

	scfg := storageConfig()
	if scfg.Endpoint != "" {
		client, err := storage.New(scfg)
		if err != nil {
			return err
		}
		if err := client.EnsureBucket(cmd.Context()); err != nil {
			return err
		}
		srv.store = client
	} else {
		fmt.Fprintln(os.Stderr, "warning: no object store configured; /documents and ?store are disabled")
	}

	router := httprouter.New()
	router.POST("/merge", srv.handleMerge)
	router.GET("/documents/:id", srv.handleDownload)
	router.GET("/healthz", srv.handleHealth)

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, router)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *server) handleMerge(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	watch := stopwatch.Start()

	// Cap the whole request body; ParseMultipartForm's argument only bounds
	// the in-memory share, the rest would spill to temp files.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, fmt.Sprintf("request body exceeds %d bytes", s.maxUpload), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("parsing multipart form: %v", err), http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["files"]

	sources := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("opening upload %s: %v", fh.Filename, err), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("reading upload %s: %v", fh.Filename, err), http.StatusBadRequest)
			return
		}
		sources = append(sources, data)
	}

	id := uuid.NewString()
	doc, err := merge.Accumulate(merge.PDFAppender{}, sources)
	if err != nil {
		s.record(types.MergeRecord{
			ID: id, Mode: types.ModeStrict, Sources: len(sources),
			Status: types.StatusFailed, Error: err.Error(),
		})
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	out, err := doc.Save()
	if err != nil {
		s.record(types.MergeRecord{
			ID: id, Mode: types.ModeStrict, Sources: len(sources),
			Status: types.StatusFailed, Error: err.Error(),
		})
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storeResult := r.URL.Query().Get("store") != ""
	if storeResult && s.store == nil {
		http.Error(w, "no object store configured", http.StatusServiceUnavailable)
		return
	}

	dest := ""
	if storeResult {
		dest = id + ".pdf"
		if err := s.store.Upload(r.Context(), dest, out); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, dest)
	} else {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(out)
	}

	s.record(types.MergeRecord{
		ID: id, Mode: types.ModeStrict, Sources: len(sources),
		Pages: doc.PageCount(), Output: dest, Status: types.StatusOK,
	})

	watch.Stop()
	log.Printf("merged %d file(s), %d page(s) in %v ms", len(sources), doc.PageCount(), watch.Milliseconds())
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.store == nil {
		http.Error(w, "no object store configured", http.StatusServiceUnavailable)
		return
	}

	id := ps.ByName("id")
	data, err := s.store.Download(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}
