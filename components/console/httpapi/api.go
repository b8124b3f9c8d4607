package httpapi

import (
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/board"
	"github.com/goliatone/go-waconsole/components/console/commands"
	"github.com/goliatone/go-waconsole/components/console/queries"
	"github.com/goliatone/go-waconsole/components/records"
	"github.com/goliatone/go-waconsole/components/variations"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Move          gocommand.Commander[board.MoveRequest]
	SetQuota      gocommand.Commander[commands.SetQuotaInput]
	ToggleFeature gocommand.Commander[commands.ToggleFeatureInput]
	UpdateRecord  gocommand.Commander[commands.UpdateRecordInput]

	Analyze  gocommand.Querier[string, variations.Analysis]
	Board    gocommand.Querier[queries.BoardInput, []board.Column]
	Table    gocommand.Querier[queries.TableInput, records.TablePage]
	Calendar gocommand.Querier[queries.CalendarInput, records.Calendar]
}

func (h *Handlers) HandleMoveCard(w http.ResponseWriter, r *http.Request) {
	var payload board.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Move.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetQuota(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetQuotaInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SetQuota.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleFeature(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleFeatureInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.ToggleFeature.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateRecordInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.UpdateRecord.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleAnalyzeTemplate returns the breakdown for the posted template. The
// analysis always comes back 200; invalid templates report their issues in
// the payload rather than through the status code.
func (h *Handlers) HandleAnalyzeTemplate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	analysis, err := h.Analyze.Query(r.Context(), payload.Template)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, analysis)
}

func (h *Handlers) HandleBoard(w http.ResponseWriter, r *http.Request) {
	input := queries.BoardInput{
		Collection:  r.URL.Query().Get("collection"),
		StatusField: r.URL.Query().Get("status_field"),
	}
	columns, err := h.Board.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, columns)
}

func (h *Handlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	var payload queries.TableInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := h.Table.Query(r.Context(), payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, page)
}

func (h *Handlers) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	input := queries.CalendarInput{
		Collection: r.URL.Query().Get("collection"),
		FieldKey:   r.URL.Query().Get("field"),
	}
	calendar, err := h.Calendar.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, calendar)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
