package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billtrace/billtrace-server/internal/diff"
	"github.com/billtrace/billtrace-server/internal/domain"
	"github.com/billtrace/billtrace-server/internal/service"
)

//go:embed templates/*.html
var templates embed.FS

var templateFuncs = template.FuncMap{
	"opClass": func(op diff.Op) string {
		return op.String()
	},
	"wordClass": func(kind diff.WordKind) string {
		return kind.String()
	},
}

// reviewPageData contains data for the stage review template.
type reviewPageData struct {
	Bill       *domain.Bill
	LeftStage  domain.Stage
	RightStage domain.Stage
	Rows       []service.SectionTrace
	Matched    int
	Unmatched  int
}

// handleReviewPage serves the section-by-section review page for a bill.
// GET /review/{ref}?left=ih&right=enr
func (s *Server) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := chi.URLParam(r, "ref")

	leftStage, rightStage, err := reviewStages(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill, err := s.billService.GetBill(ctx, ref)
	if err != nil {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	rows, err := s.billService.StageReview(ctx, bill.ID, leftStage, rightStage)
	if err != nil {
		s.logger.Error("Failed to build stage review", "bill", ref, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := reviewPageData{
		Bill:       bill,
		LeftStage:  leftStage,
		RightStage: rightStage,
		Rows:       rows,
	}
	for _, row := range rows {
		if row.Trace != nil {
			data.Matched++
		} else {
			data.Unmatched++
		}
	}

	s.renderPage(w, "review.html", data)
}

// diffPageData contains data for the side-by-side diff template.
type diffPageData struct {
	Bill       *domain.Bill
	Comparison *service.Comparison
}

// handleDiffPage serves the side-by-side diff for one trace.
// GET /review/{ref}/diff/{traceID}
func (s *Server) handleDiffPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bill, err := s.billService.GetBill(ctx, chi.URLParam(r, "ref"))
	if err != nil {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}

	comparison, err := s.compareService.CompareTrace(ctx, chi.URLParam(r, "traceID"))
	if err != nil {
		http.Error(w, "Trace not found", http.StatusNotFound)
		return
	}

	s.renderPage(w, "diff.html", diffPageData{
		Bill:       bill,
		Comparison: comparison,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templates, "templates/"+name)
	if err != nil {
		s.logger.Error("Failed to parse template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}
