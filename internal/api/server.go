// Package api exposes map generation over HTTP. Generation runs as a
// background job: the caller gets a job id back immediately, polls the
// job for progress milestones, and reads the archived map once the job
// reports a terminal outcome. GET endpoints are public; generation is
// rate limited per IP.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/terraforge/internal/mapgen"
	"github.com/talgya/terraforge/internal/persistence"
)

// Server serves the generation API.
type Server struct {
	DB   *persistence.DB
	Port int

	mu   sync.Mutex
	jobs map[string]*Job
}

// Job tracks one background generation run. A job emits zero or more
// milestones and then exactly one terminal outcome: done with a map id,
// or failed with a message.
type Job struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"` // running | done | failed
	Milestones []string `json:"milestones"`
	MapID      string   `json:"map_id,omitempty"`
	Error      string   `json:"error,omitempty"`
	StartedAt  int64    `json:"started_at"` // unix seconds
}

// generateRequest is the POST /api/v1/maps payload.
type generateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	mapgen.Config
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	s.jobs = make(map[string]*Job)

	genLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/maps", RateLimitMiddleware(genLimiter, s.handleMaps))
	mux.HandleFunc("/api/v1/maps/", s.handleMapDetail)
	mux.HandleFunc("/api/v1/jobs/", s.handleJob)
	mux.HandleFunc("/api/v1/status", s.handleStatus)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// handleMaps lists archived maps on GET and starts a generation job on
// POST.
func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		recs, err := s.DB.ListMaps(50)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "list maps failed")
			return
		}
		writeJSON(w, http.StatusOK, recs)

	case http.MethodPost:
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := req.Config.Normalize(); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := req.Config.Validate(); err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		job := s.startJob(req)
		writeJSON(w, http.StatusAccepted, job.snapshotLocked(&s.mu))

	default:
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// startJob registers a job and runs the pipeline in the background.
// A panic inside the pipeline becomes the job's terminal failure, never
// a dead goroutine.
func (s *Server) startJob(req generateRequest) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		Status:    "running",
		StartedAt: time.Now().Unix(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.finishJob(job, "", fmt.Sprintf("generation panic: %v", rec))
			}
		}()

		res, err := mapgen.Generate(req.Config, func(milestone string) {
			s.mu.Lock()
			job.Milestones = append(job.Milestones, milestone)
			s.mu.Unlock()
		})
		if err != nil {
			s.finishJob(job, "", err.Error())
			return
		}

		name := req.Name
		if name == "" {
			name = fmt.Sprintf("%s-%dp-%d", req.Config.Terrain, req.Config.PlayerCount, res.Config.Seed)
		}
		mapID, err := s.DB.SaveResult(name, req.Description, res)
		if err != nil {
			s.finishJob(job, "", fmt.Sprintf("archive failed: %v", err))
			return
		}
		s.finishJob(job, mapID, "")
	}()

	return job
}

func (s *Server) finishJob(job *Job, mapID, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errMsg != "" {
		job.Status = "failed"
		job.Error = errMsg
		slog.Warn("generation job failed", "job", job.ID, "error", errMsg)
		return
	}
	job.Status = "done"
	job.MapID = mapID
	slog.Info("generation job finished", "job", job.ID, "map", mapID)
}

// snapshotLocked copies the job under the server lock so handlers never
// marshal a struct the worker goroutine is appending to.
func (j *Job) snapshotLocked(mu *sync.Mutex) Job {
	mu.Lock()
	defer mu.Unlock()
	c := *j
	c.Milestones = append([]string(nil), j.Milestones...)
	return c
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")

	s.mu.Lock()
	job, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		httpError(w, http.StatusNotFound, "unknown job")
		return
	}
	writeJSON(w, http.StatusOK, job.snapshotLocked(&s.mu))
}

func (s *Server) handleMapDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/maps/")

	rec, err := s.DB.GetMap(id)
	if err != nil {
		httpError(w, http.StatusNotFound, "unknown map")
		return
	}

	// The layout is stored as JSON already; splice it in raw.
	writeJSON(w, http.StatusOK, map[string]any{
		"map":    rec,
		"layout": json.RawMessage(rec.LayoutJSON),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	running := 0
	for _, j := range s.jobs {
		if j.Status == "running" {
			running++
		}
	}
	total := len(s.jobs)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"jobs_total":   total,
		"jobs_running": running,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
