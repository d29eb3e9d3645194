package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/httpserver/deps"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/listing"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

var errBadID = errors.New("id must be a positive integer")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// startupID reads the {id} path parameter.
func startupID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// parseFilter reads q, domain, designation, location and the repeatable
// quick parameter. quick also accepts a comma separated list.
func parseFilter(r *http.Request) listing.Filter {
	q := r.URL.Query()

	var quick []string
	for _, v := range q["quick"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				quick = append(quick, part)
			}
		}
	}

	return listing.Filter{
		Search:      q.Get("q"),
		Domain:      q.Get("domain"),
		Designation: q.Get("designation"),
		Location:    q.Get("location"),
		Quick:       quick,
	}
}

// parsePage reads page and per_page. Garbage falls back to the defaults,
// listing.Paginate clamps the rest.
func parsePage(r *http.Request) (page, perPage int) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	perPage, err = strconv.Atoi(q.Get("per_page"))
	if err != nil {
		perPage = listing.DefaultPerPage
	}
	return page, perPage
}

func logWriteErr(d deps.Deps, err error) {
	if err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}
