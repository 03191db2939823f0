package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggers-api/internal/store"
)

// TestingHandler exposes the data reset used by end-to-end suites.
type TestingHandler struct {
	cleaner store.Cleaner
	logger  *slog.Logger
}

// NewTestingHandler creates a new TestingHandler
func NewTestingHandler(cleaner store.Cleaner, logger *slog.Logger) *TestingHandler {
	return &TestingHandler{cleaner: cleaner, logger: handlerLogger(logger, "testing_handler")}
}

// DeleteAll handles DELETE /testing/all-data.
func (h *TestingHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.cleaner.DeleteAll(r.Context()); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.logger.Warn("all data deleted")
	w.WriteHeader(http.StatusNoContent)
}
