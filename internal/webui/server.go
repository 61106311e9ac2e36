// Package webui serves the input form and the job API. It collects the
// project specification and hands it to the pipeline; no generation logic
// lives here.
package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SarthakNawali/ai-word-generator/internal/assembler"
	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/extract"
	"github.com/SarthakNawali/ai-word-generator/internal/logger"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
	"github.com/SarthakNawali/ai-word-generator/internal/render"
)

const maxUploadBytes = 32 << 20

// Runner executes one generation run. Satisfied by *assembler.Assembler.
type Runner interface {
	Run(ctx context.Context, spec document.ProjectSpec, progress assembler.Progress) (*document.Artifact, []recovery.Warning, error)
}

type Server struct {
	runner    Runner
	extractor extract.Extractor
	startedAt time.Time
	upgrader  websocket.Upgrader

	mu   sync.Mutex
	jobs map[string]*job
}

func NewServer(runner Runner) *Server {
	return &Server{
		runner:    runner,
		extractor: extract.PDFExtractor{},
		startedAt: time.Now().UTC(),
		jobs:      make(map[string]*job),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleJobStatus)
	mux.HandleFunc("GET /api/jobs/{id}/artifact", s.handleArtifact)
	mux.HandleFunc("GET /api/jobs/{id}/ws", s.handleJobWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"started_at": s.startedAt.Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	spec := document.ProjectSpec{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Author:      strings.TrimSpace(r.FormValue("author")),
		Description: strings.TrimSpace(r.FormValue("description")),
		ExtraNotes:  strings.TrimSpace(r.FormValue("notes")),
	}
	if spec.Title == "" || spec.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and description are required"})
		return
	}
	pages, err := strconv.Atoi(strings.TrimSpace(r.FormValue("pages")))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pages must be a number"})
		return
	}
	spec.TargetPages = pages
	if outline := strings.TrimSpace(r.FormValue("outline")); outline != "" {
		for _, t := range strings.Split(outline, ",") {
			if t = strings.TrimSpace(t); t != "" {
				spec.CustomOutline = append(spec.CustomOutline, t)
			}
		}
	}

	j := &job{ID: uuid.NewString(), Status: jobRunning, Created: time.Now().UTC()}

	// Extract uploaded reference material now so upload handles are not
	// held across the run. Unreadable files degrade to a warning.
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["references"] {
			text, err := s.extractUpload(fh)
			if err != nil {
				logger.Warn("reference upload %q unreadable: %v", fh.Filename, err)
				j.addWarning(recovery.Warning{
					Section:    fh.Filename,
					Capability: extract.Capability,
					Kind:       recovery.KindOf(err),
					Message:    err.Error(),
				})
				continue
			}
			spec.ReferenceTexts = append(spec.ReferenceTexts, text)
		}
	}

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	go s.runJob(j, spec)

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": j.ID})
}

func (s *Server) extractUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return "", err
	}
	text, err := s.extractor.Extract(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return extract.Clean(text), nil
}

func (s *Server) runJob(j *job, spec document.ProjectSpec) {
	art, warnings, err := s.runner.Run(context.Background(), spec, func(stage string, sectionIdx int, msg string) {
		j.publish(progressEvent{Stage: stage, Section: sectionIdx, Message: msg})
	})

	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, warnings...)
	if err != nil {
		j.Status = jobFailed
		j.Err = err.Error()
		logger.Error("job %s failed: %v", j.ID, err)
	} else {
		j.Status = jobDone
		j.Artifact = art
	}
	j.closeSubscribersLocked()
}

func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) *job {
	s.mu.Lock()
	j := s.jobs[r.PathValue("id")]
	s.mu.Unlock()
	if j == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job"})
	}
	return j
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	j := s.lookupJob(w, r)
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	resp := map[string]any{
		"job_id":   j.ID,
		"status":   j.Status,
		"created":  j.Created.Format(time.RFC3339),
		"warnings": warningPayload(j.Warnings),
	}
	if j.Err != "" {
		resp["error"] = j.Err
	}
	if j.Artifact != nil {
		resp["title"] = j.Artifact.Title
		resp["sections"] = len(j.Artifact.Sections)
		resp["images"] = j.Artifact.ImageCount()
		resp["words"] = j.Artifact.WordCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	j := s.lookupJob(w, r)
	if j == nil {
		return
	}
	j.mu.Lock()
	art := j.Artifact
	j.mu.Unlock()
	if art == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "job has no artifact"})
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.Slug(art.Title)+".md"))
		_, _ = w.Write([]byte(render.Markdown(art)))
	default:
		out, err := render.HTML(art)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.Slug(art.Title)+".html"))
		_, _ = w.Write([]byte(out))
	}
}

func (s *Server) handleJobWS(w http.ResponseWriter, r *http.Request) {
	j := s.lookupJob(w, r)
	if j == nil {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Replay history so late subscribers see the whole run, then stream
	// until the job settles.
	history, ch := j.subscribe()
	for _, ev := range history {
		if err := conn.WriteJSON(ev); err != nil {
			j.unsubscribe(ch)
			return
		}
	}
	for ev := range ch {
		if err := conn.WriteJSON(ev); err != nil {
			j.unsubscribe(ch)
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"),
		time.Now().Add(time.Second))
}

func warningPayload(warnings []recovery.Warning) []map[string]string {
	out := make([]map[string]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, map[string]string{
			"section":    w.Section,
			"capability": w.Capability,
			"kind":       string(w.Kind),
			"message":    w.Message,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
