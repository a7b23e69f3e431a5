package templates

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/zjamron/redline/pkg/compare"
)

var (
	funcMap = map[string]any{
		"stats_summary": func(s compare.Statistics) string {
			return fmt.Sprintf(
				"%d inserted, %d deleted, %d moved, %d unchanged (%.1f%% changed)",
				s.Insertions, s.Deletions, s.Moves, s.Unchanged, s.ChangePercent(),
			)
		},
	}
	Templates = template.Must(
		template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "*.tmpl"),
	)
	//go:embed *.tmpl
	templateFS embed.FS
)

// ResultTemplateData is handed to result.tmpl; Body is the pre-rendered,
// pre-escaped redline markup produced by pkg/render.HTML.
type ResultTemplateData struct {
	ID     string
	Result compare.Result
	Body   template.HTML
}

// IndexTemplateData is handed to index.tmpl.
type IndexTemplateData struct {
	PublicURL string
}
