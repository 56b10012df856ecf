package reports

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/autoazul/store-profit/pkg/money"
)

//go:embed templates/*.html assets/admin.css
var assets embed.FS

// exportNonceAction names the export action for nonce issue/verify.
const exportNonceAction = "export-report"

const dateLayout = "2006-01-02"

type ProfitSource interface {
	Aggregate(start, end time.Time) (*ProfitReport, error)
}

type InventorySource interface {
	Aggregate() (*InventoryReport, error)
}

// Nonces issues and checks the per-request token the export actions require.
type Nonces interface {
	Issue(action string) string
	Verify(action, nonce string) bool
}

type Handler struct {
	profit    ProfitSource
	inventory InventorySource
	nonces    Nonces
	format    money.Formatter
	log       *zap.SugaredLogger
	tmpl      *template.Template
	now       func() time.Time
}

func NewHandler(profit ProfitSource, inventory InventorySource, nonces Nonces, format money.Formatter, log *zap.SugaredLogger) *Handler {
	return &Handler{
		profit:    profit,
		inventory: inventory,
		nonces:    nonces,
		format:    format,
		log:       log,
		tmpl:      template.Must(template.ParseFS(assets, "templates/*.html")),
		now:       time.Now,
	}
}

// --- view models ---

type profitRowView struct {
	Name     string
	SKU      string
	Quantity int
	Revenue  string
	Cost     string
	Profit   string
	Margin   string
}

type profitPageView struct {
	StartDate string
	EndDate   string
	Revenue   string
	Cost      string
	Profit    string
	Margin    string
	ExportURL string
	Rows      []profitRowView
}

type inventoryRowView struct {
	Name          string
	SKU           string
	Stock         int
	PurchasePrice string
	SalePrice     string
	Investment    string
	Value         string
	Profit        string
	Margin        string
}

type inventoryPageView struct {
	Investment    string
	Value         string
	Profit        string
	AverageMargin string
	ExportURL     string
	Rows          []inventoryRowView
}

// --- pages ---

func (h *Handler) HandleProfitPage(w http.ResponseWriter, r *http.Request) {
	start, end := h.dateRange(r)

	report, err := h.profit.Aggregate(start, end)
	if err != nil {
		h.log.Errorw("profit report failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to build profit report")
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, report)
		return
	}

	view := profitPageView{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Revenue:   h.format.Format(report.TotalRevenue),
		Cost:      h.format.Format(report.TotalCost),
		Profit:    h.format.Format(report.TotalProfit),
		Margin:    money.Percent(report.Margin()),
		ExportURL: h.profitExportURL(start, end),
	}
	for _, row := range report.Rows {
		view.Rows = append(view.Rows, profitRowView{
			Name:     row.Name,
			SKU:      row.SKU,
			Quantity: row.Quantity,
			Revenue:  h.format.Format(row.Revenue),
			Cost:     h.format.Format(row.Cost),
			Profit:   h.format.Format(row.Profit),
			Margin:   money.Percent(row.Margin()),
		})
	}

	h.render(w, "profit.html", view)
}

func (h *Handler) HandleInventoryPage(w http.ResponseWriter, r *http.Request) {
	report, err := h.inventory.Aggregate()
	if err != nil {
		h.log.Errorw("inventory report failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to build inventory report")
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, report)
		return
	}

	view := inventoryPageView{
		Investment:    h.format.Format(report.TotalInvestment),
		Value:         h.format.Format(report.TotalValue),
		Profit:        h.format.Format(report.TotalProfit),
		AverageMargin: money.Percent(report.AverageMargin),
		ExportURL: fmt.Sprintf("/admin/reports/inventory/export?nonce=%s",
			url.QueryEscape(h.nonces.Issue(exportNonceAction))),
	}
	for _, row := range report.Rows {
		view.Rows = append(view.Rows, inventoryRowView{
			Name:          row.Name,
			SKU:           row.SKU,
			Stock:         row.Stock,
			PurchasePrice: h.format.Format(row.PurchasePrice),
			SalePrice:     h.format.Format(row.SalePrice),
			Investment:    h.format.Format(row.Investment),
			Value:         h.format.Format(row.Value),
			Profit:        h.format.Format(row.Profit),
			Margin:        money.Percent(row.Margin),
		})
	}

	h.render(w, "inventory.html", view)
}

// --- exports ---

func (h *Handler) HandleProfitExport(w http.ResponseWriter, r *http.Request) {
	if !h.nonces.Verify(exportNonceAction, r.URL.Query().Get("nonce")) {
		writeError(w, http.StatusForbidden, "invalid export token")
		return
	}

	start, end := h.dateRange(r)

	report, err := h.profit.Aggregate(start, end)
	if err != nil {
		h.log.Errorw("profit export failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to build profit report")
		return
	}

	writeCSVHeaders(w, ProfitCSVFilename(start, end))
	if err := WriteProfitCSV(w, report); err != nil {
		h.log.Errorw("profit csv write failed", "err", err)
	}
}

func (h *Handler) HandleInventoryExport(w http.ResponseWriter, r *http.Request) {
	if !h.nonces.Verify(exportNonceAction, r.URL.Query().Get("nonce")) {
		writeError(w, http.StatusForbidden, "invalid export token")
		return
	}

	report, err := h.inventory.Aggregate()
	if err != nil {
		h.log.Errorw("inventory export failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to build inventory report")
		return
	}

	writeCSVHeaders(w, InventoryCSVFilename(h.now()))
	if err := WriteInventoryCSV(w, report); err != nil {
		h.log.Errorw("inventory csv write failed", "err", err)
	}
}

// HandleStylesheet serves the bundled admin stylesheet.
func (h *Handler) HandleStylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := assets.ReadFile("assets/admin.css")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(css)
}

// --- helpers ---

// dateRange reads start_date/end_date query parameters. Absent or unparsable
// values fall back to the default window (first of month through today).
func (h *Handler) dateRange(r *http.Request) (time.Time, time.Time) {
	defStart, defEnd := DefaultRange(h.now())

	start := defStart
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if t, err := time.Parse(dateLayout, raw); err == nil {
			start = t
		}
	}

	end := defEnd
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if t, err := time.Parse(dateLayout, raw); err == nil {
			end = t
		}
	}

	return start, end
}

func (h *Handler) profitExportURL(start, end time.Time) string {
	q := url.Values{}
	q.Set("start_date", start.Format(dateLayout))
	q.Set("end_date", end.Format(dateLayout))
	q.Set("nonce", h.nonces.Issue(exportNonceAction))
	return "/admin/reports/profit/export?" + q.Encode()
}

func (h *Handler) render(w http.ResponseWriter, name string, view any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, view); err != nil {
		h.log.Errorw("template render failed", "template", name, "err", err)
	}
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
