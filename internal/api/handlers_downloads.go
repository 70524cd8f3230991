package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dgallion1/sowgen/internal/pipeline"
	"github.com/dgallion1/sowgen/internal/sow"
	"github.com/go-chi/chi/v5"
)

type artifact struct {
	filename    string
	contentType string
	write       func(*bytes.Buffer, *pipeline.Result) error
}

var artifacts = map[string]artifact{
	"guide.txt": {"oracle_migration_guide.txt", "text/plain; charset=utf-8", func(b *bytes.Buffer, r *pipeline.Result) error {
		_, err := b.WriteString(r.Guide)
		return err
	}},
	"sow.txt": {"oracle_migration_sow.txt", "text/plain; charset=utf-8", func(b *bytes.Buffer, r *pipeline.Result) error {
		_, err := b.WriteString(r.SOW)
		return err
	}},
	"sow.docx": {"oracle_migration_sow.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", func(b *bytes.Buffer, r *pipeline.Result) error {
		return sow.WriteDOCX(b, r.SOW)
	}},
	"sow.pdf": {"oracle_migration_sow.pdf", "application/pdf", func(b *bytes.Buffer, r *pipeline.Result) error {
		return sow.WritePDF(b, r.SOW)
	}},
}

func downloadLinks(id string) map[string]string {
	links := make(map[string]string, len(artifacts))
	for name := range artifacts {
		links[name] = fmt.Sprintf("/downloads/%s/%s", id, name)
	}
	return links
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	a, ok := artifacts[chi.URLParam(r, "artifact")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	res := s.gen.Results().Get(chi.URLParam(r, "resultID"))
	if res == nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := a.write(&buf, res); err != nil {
		s.log.Error("render download", "result_id", res.ID, "artifact", a.filename, "error", err)
		http.Error(w, "failed to render download", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, a.filename))
	buf.WriteTo(w)
}
