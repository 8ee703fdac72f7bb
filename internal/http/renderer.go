package httpx

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates; nil uses the embedded set
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the
// provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	tfs := cfg.TemplateFS
	if tfs == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, err
		}
		tfs = sub
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t, err := template.New("root").Funcs(templateFuncs()).ParseFS(tfs, "*.tmpl")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Templates hold both value and pointer timestamps; render either.
		"formatDateTime": func(v any) string {
			switch t := v.(type) {
			case model.DateTime:
				return util.FormatDateTime(t)
			case *model.DateTime:
				if t == nil {
					return ""
				}
				return util.FormatDateTime(*t)
			}
			return ""
		},
		"formatDate": util.FormatDate,
		"fileSize": func(v any) string {
			switch t := v.(type) {
			case int64:
				return util.FormatFileSize(t)
			case *int64:
				if t == nil {
					return ""
				}
				return util.FormatFileSize(*t)
			}
			return ""
		},
		"batchLabel":  util.BatchLabel,
		"personLabel": util.PersonLabel,
	}
}

// Render executes the named page template wrapped in the layout. The page
// is rendered to a buffer first so a template failure yields a clean 500
// instead of a torn page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
