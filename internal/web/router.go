package web

import (
	"context"
	"net/http"

	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
	webembed "github.com/slocops/handover/web"
)

// Insighter produces advisory insights over an inventory snapshot.
type Insighter interface {
	InventoryInsights(ctx context.Context, records []model.InventoryRecord) string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Store     *inventory.Store
	Log       *handover.Log
	Processor *handover.Processor
	Advisor   Insighter
	Templates *Templates
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(store *inventory.Store, log *handover.Log, proc *handover.Processor, advisor Insighter) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:     store,
		Log:       log,
		Processor: proc,
		Advisor:   advisor,
		Templates: templates,
	}

	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.Dashboard)
	mux.HandleFunc("GET /inventory", s.InventoryPage)
	mux.HandleFunc("GET /handovers", s.HistoryPage)
	mux.HandleFunc("GET /handovers/new", s.HandoverNewPage)
	mux.HandleFunc("POST /handovers/new", s.HandoverCreateSubmit)

	return mux, nil
}
