package http

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzip"
	"github.com/zjamron/redline/pkg/compare"
	"github.com/zjamron/redline/pkg/jsondoc"
	"github.com/zjamron/redline/pkg/render"
	"github.com/zjamron/redline/templates"
)

func (s *Server) serveDiff(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	orig, mod, err := s.getDocuments(r.Context(), id)
	if err != nil {
		return err
	}
	if orig == nil {
		w.WriteHeader(404)
		w.Write([]byte("not found"))
		return nil
	}

	result := compare.Compare(orig, mod, s.Config)
	if !result.Success {
		return result.Err
	}

	// Prefer the stats cached at upload time so repeated views of the same
	// job report identical numbers even if the configured thresholds have
	// since changed; fall back to the fresh computation (e.g. "example").
	if cached, err := s.DB.GetStatistics(id); err == nil && !cached.IsZero() {
		result.Stats = compare.Statistics{
			Insertions: cached.Insertions,
			Deletions:  cached.Deletions,
			Moves:      cached.Moves,
			Unchanged:  cached.Unchanged,
		}
	}

	if !isBrowser(r) {
		w.Header().Set(ctHeader, ctPlain)
		w.Write([]byte(render.Text(result)))
		return nil
	}

	return templates.Templates.ExecuteTemplate(w, "result.tmpl", &templates.ResultTemplateData{
		ID:     id,
		Result: result,
		Body:   render.HTML(result),
	})
}

// getDocuments resolves id to its stored pair of documents. It returns a
// nil orig (and no error) if id does not exist.
func (s *Server) getDocuments(ctx context.Context, id string) (*jsondoc.Document, *jsondoc.Document, error) {
	if id == "example" {
		return exampleOrig, exampleMod, nil
	}

	job, err := s.DB.GetJob(id)
	if err != nil {
		return nil, nil, err
	}
	if job.IsZero() {
		return nil, nil, nil
	}

	data, err := s.Storage.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return tgzReadDocuments(data)
}

func tgzReadDocuments(data []byte) (*jsondoc.Document, *jsondoc.Document, error) {
	gzrd, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer gzrd.Close()

	raw := make(map[string][]byte, 2)
	rd := tar.NewReader(gzrd)
	for {
		hdr, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}
		content, err := io.ReadAll(rd)
		if err != nil {
			return nil, nil, err
		}
		raw[hdr.Name] = content
	}

	origRaw, ok := raw["orig.json"]
	if !ok {
		return nil, nil, fmt.Errorf("archive missing orig.json")
	}
	modRaw, ok := raw["mod.json"]
	if !ok {
		return nil, nil, fmt.Errorf("archive missing mod.json")
	}

	orig, err := jsondoc.Decode(bytes.NewReader(origRaw))
	if err != nil {
		return nil, nil, err
	}
	mod, err := jsondoc.Decode(bytes.NewReader(modRaw))
	if err != nil {
		return nil, nil, err
	}
	return orig, mod, nil
}

var exampleOrig = &jsondoc.Document{
	Paragraphs: []jsondoc.Paragraph{
		{Text: "Service Agreement", Heading: true},
		{Text: "This Agreement is entered into between the Customer and the Provider."},
		{Text: "The Provider shall deliver the services described in Exhibit A within 30 days."},
	},
}

var exampleMod = &jsondoc.Document{
	Paragraphs: []jsondoc.Paragraph{
		{Text: "Master Service Agreement", Heading: true},
		{Text: "This Agreement is entered into between the Customer and the Provider."},
		{Text: "The Provider shall deliver the services described in Exhibit A within 45 business days."},
	},
}

// serveDocument returns the JSON document at n (0 = orig, 1 = mod) for a
// stored job, re-encoded from its decoded form, used by the /{id}/orig and
// /{id}/mod endpoints.
func (s *Server) serveDocument(n int) http.HandlerFunc {
	return s.e(func(w http.ResponseWriter, r *http.Request) error {
		id := chi.URLParam(r, "id")
		orig, mod, err := s.getDocuments(r.Context(), id)
		if err != nil {
			return err
		}
		if orig == nil {
			w.WriteHeader(404)
			w.Write([]byte("not found"))
			return nil
		}

		doc := orig
		if n == 1 {
			doc = mod
		}
		w.Header().Set(ctHeader, ctJSON)
		return jsondoc.Encode(w, doc)
	})
}
