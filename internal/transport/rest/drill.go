package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/heartmarshall/daydrill/internal/catalog"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/drill"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

// drillService is the command surface the HTTP host drives.
type drillService interface {
	State() drill.State
	BeginLoad() drill.Ticket
	LoadCatalog(ctx context.Context, ticket drill.Ticket, name string, data []byte) (catalog.Report, error)
	ToggleDay(day string) (bool, error)
	SelectAll()
	ClearSelection()

	Session() quiz.View
	StartSession(ctx context.Context) (quiz.View, error)
	SetDraft(d domain.Draft) error
	Submit(ctx context.Context, d domain.Draft) (domain.HistoryEntry, error)
	Advance() error
	Enter(ctx context.Context, d domain.Draft) (drill.EnterResult, error)
	SetMode(m domain.Mode) error
	RetryWrong() (quiz.View, error)
	ResetRound() (quiz.View, error)

	BankEntries() []domain.BankEntry
	ExportBank(ctx context.Context, format domain.ExportFormat) (wrongbank.ExportFile, error)
	ImportBank(ctx context.Context, name string, data []byte, start bool) (drill.ImportResult, error)
	ReplayBank(ctx context.Context) (quiz.View, error)
	RemoveEntry(ctx context.Context, id string) error
	ClearBank(ctx context.Context, confirmed bool) error
}

// DrillHandler exposes drill commands as a JSON API.
type DrillHandler struct {
	svc           drillService
	log           *slog.Logger
	maxUpload     int64
	defaultFormat domain.ExportFormat
	uploadLimit   func(http.Handler) http.Handler
}

// NewDrillHandler creates a DrillHandler.
func NewDrillHandler(svc drillService, logger *slog.Logger, maxUpload int64, defaultFormat domain.ExportFormat) *DrillHandler {
	if defaultFormat == "" {
		defaultFormat = domain.FormatXLSX
	}
	return &DrillHandler{
		svc:           svc,
		log:           logger.With("handler", "drill"),
		maxUpload:     maxUpload,
		defaultFormat: defaultFormat,
	}
}

// WithUploadLimit wraps the spreadsheet upload routes with mw.
func (h *DrillHandler) WithUploadLimit(mw func(http.Handler) http.Handler) *DrillHandler {
	h.uploadLimit = mw
	return h
}

func (h *DrillHandler) upload(fn http.HandlerFunc) http.Handler {
	if h.uploadLimit == nil {
		return fn
	}
	return h.uploadLimit(fn)
}

// Register mounts every drill route on mux.
func (h *DrillHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", h.GetState)
	mux.Handle("POST /api/catalog", h.upload(h.LoadCatalog))

	mux.HandleFunc("POST /api/days/{day}/toggle", h.ToggleDay)
	mux.HandleFunc("POST /api/days/select-all", h.SelectAll)
	mux.HandleFunc("POST /api/days/clear", h.ClearSelection)

	mux.HandleFunc("GET /api/session", h.GetSession)
	mux.HandleFunc("POST /api/session/start", h.StartSession)
	mux.HandleFunc("PUT /api/session/draft", h.SetDraft)
	mux.HandleFunc("POST /api/session/submit", h.Submit)
	mux.HandleFunc("POST /api/session/advance", h.Advance)
	mux.HandleFunc("POST /api/session/enter", h.Enter)
	mux.HandleFunc("PUT /api/session/mode", h.SetMode)
	mux.HandleFunc("POST /api/session/retry-wrong", h.RetryWrong)
	mux.HandleFunc("POST /api/session/reset-round", h.ResetRound)

	mux.HandleFunc("GET /api/bank", h.ListBank)
	mux.HandleFunc("GET /api/bank/export", h.ExportBank)
	mux.Handle("POST /api/bank/import", h.upload(h.ImportBank))
	mux.HandleFunc("POST /api/bank/replay", h.ReplayBank)
	mux.HandleFunc("DELETE /api/bank/{id}", h.RemoveEntry)
	mux.HandleFunc("DELETE /api/bank", h.ClearBank)
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type toggleResponse struct {
	Day      string `json:"day"`
	Selected bool   `json:"selected"`
}

type submitResponse struct {
	Entry   domain.HistoryEntry `json:"entry"`
	Session quiz.View           `json:"session"`
}

type enterResponse struct {
	drill.EnterResult
	Session quiz.View `json:"session"`
}

type bankResponse struct {
	Count   int                `json:"count"`
	Entries []domain.BankEntry `json:"entries"`
}

// ---------------------------------------------------------------------------
// Catalog and selection
// ---------------------------------------------------------------------------

// GetState handles GET /api/state.
func (h *DrillHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.State())
}

// LoadCatalog handles POST /api/catalog.
func (h *DrillHandler) LoadCatalog(w http.ResponseWriter, r *http.Request) {
	ticket := h.svc.BeginLoad()

	name, data, err := readUpload(w, r, h.maxUpload)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	report, err := h.svc.LoadCatalog(r.Context(), ticket, name, data)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ToggleDay handles POST /api/days/{day}/toggle.
func (h *DrillHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	day := r.PathValue("day")
	selected, err := h.svc.ToggleDay(day)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Day: day, Selected: selected})
}

// SelectAll handles POST /api/days/select-all.
func (h *DrillHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	h.svc.SelectAll()
	writeJSON(w, http.StatusOK, h.svc.State())
}

// ClearSelection handles POST /api/days/clear.
func (h *DrillHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSelection()
	writeJSON(w, http.StatusOK, h.svc.State())
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// GetSession handles GET /api/session.
func (h *DrillHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Session())
}

// StartSession handles POST /api/session/start.
func (h *DrillHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r)(h.svc.StartSession(r.Context()))
}

// SetDraft handles PUT /api/session/draft.
func (h *DrillHandler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var d domain.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	if err := h.svc.SetDraft(d); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit handles POST /api/session/submit.
func (h *DrillHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var d domain.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	entry, err := h.svc.Submit(r.Context(), d)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Entry: entry, Session: h.svc.Session()})
}

// Advance handles POST /api/session/advance.
func (h *DrillHandler) Advance(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Advance(); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Session())
}

// Enter handles POST /api/session/enter. The body is optional when the
// current question is already revealed.
func (h *DrillHandler) Enter(w http.ResponseWriter, r *http.Request) {
	var d domain.Draft
	if r.ContentLength != 0 && !decodeBody(w, r, &d) {
		return
	}
	res, err := h.svc.Enter(r.Context(), d)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, enterResponse{EnterResult: res, Session: h.svc.Session()})
}

// SetMode handles PUT /api/session/mode.
func (h *DrillHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err == nil {
		err = h.svc.SetMode(mode)
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Session())
}

// RetryWrong handles POST /api/session/retry-wrong.
func (h *DrillHandler) RetryWrong(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r)(h.svc.RetryWrong())
}

// ResetRound handles POST /api/session/reset-round.
func (h *DrillHandler) ResetRound(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r)(h.svc.ResetRound())
}

// ---------------------------------------------------------------------------
// Wrong-answer bank
// ---------------------------------------------------------------------------

// ListBank handles GET /api/bank.
func (h *DrillHandler) ListBank(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.BankEntries()
	writeJSON(w, http.StatusOK, bankResponse{Count: len(entries), Entries: entries})
}

// ExportBank handles GET /api/bank/export?format=xlsx|csv.
func (h *DrillHandler) ExportBank(w http.ResponseWriter, r *http.Request) {
	format := h.defaultFormat
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := domain.ParseExportFormat(raw)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		format = f
	}

	file, err := h.svc.ExportBank(r.Context(), format)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// ImportBank handles POST /api/bank/import?start=true.
func (h *DrillHandler) ImportBank(w http.ResponseWriter, r *http.Request) {
	start, _ := strconv.ParseBool(r.URL.Query().Get("start"))

	name, data, err := readUpload(w, r, h.maxUpload)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	res, err := h.svc.ImportBank(r.Context(), name, data, start)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReplayBank handles POST /api/bank/replay.
func (h *DrillHandler) ReplayBank(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r)(h.svc.ReplayBank(r.Context()))
}

// RemoveEntry handles DELETE /api/bank/{id}.
func (h *DrillHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveEntry(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearBank handles DELETE /api/bank?confirm=true.
func (h *DrillHandler) ClearBank(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.svc.ClearBank(r.Context(), confirmed); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *DrillHandler) writeView(w http.ResponseWriter, r *http.Request) func(quiz.View, error) {
	return func(v quiz.View, err error) {
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return false
	}
	return true
}
