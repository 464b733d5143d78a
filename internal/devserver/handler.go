package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nao1215/supercrawl/internal/model"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.Health{Status: "healthy", Service: ServiceName})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.db.ListProjects(r.Context())
	if err != nil {
		s.internalError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	domain := strings.TrimSpace(req.Domain)
	if domain == "" {
		writeError(w, http.StatusBadRequest, "Domain is required")
		return
	}

	p := model.Project{
		ID:        s.newID(),
		Domain:    domain,
		UserID:    req.UserID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.InsertProject(r.Context(), p); err != nil {
		s.internalError(w, "create project", err)
		return
	}
	s.logger.Debug("project created", "project_id", p.ID, "domain", p.Domain)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleStartCrawl(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.db.GetProject(r.Context(), id)
	if err != nil {
		s.internalError(w, "get project", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	crawl, err := s.startCrawl(r.Context(), p)
	if err != nil {
		s.internalError(w, "start crawl", err)
		return
	}
	writeJSON(w, http.StatusAccepted, model.CrawlAck{Message: "Crawl started", TaskID: crawl.TaskID})
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.db.ListPages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, "list pages", err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := s.db.ListIssues(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, "list issues", err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
