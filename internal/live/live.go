// Package live serves a single-shot WebSocket analysis endpoint via
// nhooyr.io/websocket: each connection is a one-request-one-response
// exchange, not a broadcast subscription.
package live

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/holla2040/synanalyze/internal/analysis"
	"github.com/holla2040/synanalyze/internal/store"
)

// Serve starts an HTTP server on addr with one endpoint, /analyze, that
// accepts a WebSocket upgrade.
func Serve(addr string, st *store.Store) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		handleConn(w, r, st)
	})
	log.Printf("live: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func handleConn(w http.ResponseWriter, r *http.Request, st *store.Store) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("live: accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	if err != nil {
		log.Printf("live: read failed: %v", err)
		return
	}

	res := analysis.Run(string(data))

	runID := uuid.NewString()
	if err := st.StartRun(runID, "<websocket>"); err != nil {
		log.Printf("live: record run start failed: %v", err)
	} else if err := st.RecordRun(runID, string(res.Verdict), res.Diagnostic); err != nil {
		log.Printf("live: record run result failed: %v", err)
	}

	writeCtx, writeCancel := context.WithTimeout(ctx, 5*time.Second)
	defer writeCancel()
	if err := conn.Write(writeCtx, websocket.MessageText, []byte(res.Output)); err != nil {
		log.Printf("live: write failed: %v", err)
	}
}
