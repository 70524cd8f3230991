package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sowgen/internal/form"
	"github.com/dgallion1/sowgen/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Form     form.Form
		Sections string
	}{form.Defaults(), strings.Join(s.gen.Titles, ", ")}
	if err := s.pages.render(w, s.pages.index, data); err != nil {
		s.log.Error("render index", "error", err)
	}
}

// handleGenerateForm serves the questionnaire submission. The document and
// section list are optional; when the form is not multipart it is read as a
// plain urlencoded body.
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	err := r.ParseMultipartForm(32 << 20)
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
			return
		}
	case err != nil:
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	default:
		defer r.MultipartForm.RemoveAll()
	}

	req := pipeline.Request{
		Form:         form.FromValues(r.Form),
		IncludeGuide: form.IsYes(r.FormValue("include_guide")),
		Titles:       parseTitles(r.FormValue("sections")),
	}

	if r.MultipartForm != nil {
		filename, data, status, err := s.readUpload(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		req.Filename, req.Document = filename, data
	}

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.log.Error("generate", "error", err)
		http.Error(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Result    *pipeline.Result
		GuideHTML template.HTML
	}{res, s.pages.markdownHTML(res.Guide)}
	if err := s.pages.render(w, s.pages.result, data); err != nil {
		s.log.Error("render result", "error", err)
	}
}

// readUpload returns the optional "document" file. A missing file is not an
// error.
func (s *Server) readUpload(r *http.Request) (string, []byte, int, error) {
	file, header, err := r.FormFile("document")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, 0, nil
	}
	if err != nil {
		return "", nil, http.StatusBadRequest, fmt.Errorf("invalid document: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, http.StatusInternalServerError, errors.New("failed to read document")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, http.StatusRequestEntityTooLarge, fmt.Errorf("document exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return sanitizeFilename(header.Filename), data, 0, nil
}

// generateRequest is the JSON body of /api/generate. Omitted form fields keep
// their defaults and the guide is included unless turned off. Document is
// base64 encoded. SeedURL may only name the configured guide URL; the server
// never fetches caller-chosen hosts.
type generateRequest struct {
	form.Form
	IncludeGuide bool     `json:"include_guide"`
	SeedURL      string   `json:"seed_url"`
	Sections     []string `json:"sections"`
	Filename     string   `json:"filename"`
	Document     []byte   `json:"document"`
}

type generateResponse struct {
	*pipeline.Result
	Downloads map[string]string `json:"downloads"`
}

func (s *Server) handleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes) // base64 overhead

	body := generateRequest{Form: form.Defaults(), IncludeGuide: true}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(body.Document)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if body.SeedURL != "" && body.SeedURL != s.gen.SeedURL {
		jsonError(w, "seed_url must be the configured guide URL", http.StatusBadRequest)
		return
	}
	if len(body.Document) > 0 && body.Filename == "" {
		jsonError(w, "filename is required with a document", http.StatusBadRequest)
		return
	}

	res, err := s.gen.Generate(r.Context(), pipeline.Request{
		Form:         body.Form,
		IncludeGuide: body.IncludeGuide,
		Filename:     sanitizeFilename(body.Filename),
		Document:     body.Document,
		Titles:       cleanTitles(body.Sections),
	})
	if err != nil {
		jsonError(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(generateResponse{Result: res, Downloads: downloadLinks(res.ID)})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	res := s.gen.Results().Get(chi.URLParam(r, "resultID"))
	if res == nil {
		jsonError(w, "result not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateResponse{Result: res, Downloads: downloadLinks(res.ID)})
}

// parseTitles splits a comma or newline separated section list.
func parseTitles(s string) []string {
	return cleanTitles(strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }))
}

func cleanTitles(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	if name == "" {
		return ""
	}
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
