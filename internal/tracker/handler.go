package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type selectDateRequest struct {
	Date string `json:"date"`
}

// formValue is a weight or reps field, sent as a JSON number or as the raw
// text of the form input. Anything else reads as empty, so only that row
// is skipped.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = formValue(text)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*v = formValue(num)
		return nil
	}
	*v = ""
	return nil
}

type setRow struct {
	Weight formValue `json:"weight"`
	Reps   formValue `json:"reps"`
}

type addSetsBody struct {
	BodyPart string   `json:"bodyPart"`
	Exercise string   `json:"exercise"`
	Sets     []setRow `json:"sets"`
}

type updateBody struct {
	BodyPart string    `json:"bodyPart"`
	Exercise string    `json:"exercise"`
	Weight   formValue `json:"weight"`
	Reps     formValue `json:"reps"`
}

type addExerciseBody struct {
	BodyPart string `json:"bodyPart"`
	Name     string `json:"name"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the read routes, then the mutating ones. The latter
// are rate limited when a limiter is given.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	router.HandleFunc("/calendar", handler.HandleView).Methods("GET", "OPTIONS").Name("calendar")
	router.HandleFunc("/logs", handler.HandleLogs).Methods("GET", "OPTIONS").Name("logs")
	router.HandleFunc("/exercises", handler.HandleCatalog).Methods("GET", "OPTIONS").Name("catalog")
	router.HandleFunc("/exercises/{bodyPart}", handler.HandleExercises).Methods("GET", "OPTIONS").Name("exercises")

	mutating := router.NewRoute().Subrouter()
	mutating.HandleFunc("/calendar/prev", handler.HandlePrevMonth).Methods("POST", "OPTIONS").Name("prev-month")
	mutating.HandleFunc("/calendar/next", handler.HandleNextMonth).Methods("POST", "OPTIONS").Name("next-month")
	mutating.HandleFunc("/calendar/select", handler.HandleSelectDate).Methods("POST", "OPTIONS").Name("select-date")
	mutating.HandleFunc("/logs", handler.HandleAddSets).Methods("POST", "OPTIONS").Name("add-sets")
	mutating.HandleFunc("/logs", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-log")
	mutating.HandleFunc("/logs/edit/cancel", handler.HandleCancelEdit).Methods("POST", "OPTIONS").Name("cancel-edit")
	mutating.HandleFunc("/logs/{id:[0-9]+}/edit", handler.HandleStartEdit).Methods("POST", "OPTIONS").Name("start-edit")
	mutating.HandleFunc("/logs/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-log")
	mutating.HandleFunc("/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-exercise")

	if rateLimiter != nil && allowedPerMin > 0 {
		mutating.Use(middleware.RateLimit(rateLimiter, "tracker", allowedPerMin, metricsManager))
	}
}

func (handler *Handler) writeView(w http.ResponseWriter, action string, view View, err error) {
	if err != nil {
		log.Errorf("tracker %s: %s", action, err)
		http.Error(w, action+" failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func (handler *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.view")
	defer span.End()

	view, err := handler.service.View(ctx)
	handler.writeView(w, "view", view, err)
}

func (handler *Handler) HandlePrevMonth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.prev_month")
	defer span.End()

	view, err := handler.service.PrevMonth(ctx)
	handler.writeView(w, "prev month", view, err)
}

func (handler *Handler) HandleNextMonth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.next_month")
	defer span.End()

	view, err := handler.service.NextMonth(ctx)
	handler.writeView(w, "next month", view, err)
}

func (handler *Handler) HandleSelectDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.select_date")
	defer span.End()

	var req selectDateRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Errorf("select date, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("date", req.Date))

	view, err := handler.service.SelectDate(ctx, req.Date)
	handler.writeView(w, "select date", view, err)
}

func (handler *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.logs")
	defer span.End()

	date := r.URL.Query().Get("date")
	span.SetAttributes(attribute.String("date", date))

	sets, err := handler.service.Logs(ctx, date)
	if errors.Is(err, workouts.ErrInvalidDate) {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("get logs for [%s]: %s", date, err)
		http.Error(w, "get logs failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, sets, http.StatusOK)
}

func (handler *Handler) HandleAddSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.add_sets")
	defer span.End()

	var body addSetsBody
	if err := decodeJSON(r, &body); err != nil {
		log.Errorf("add sets, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	inputs := make([]workouts.SetInput, 0, len(body.Sets))
	for _, row := range body.Sets {
		inputs = append(inputs, workouts.ParseSetInput(string(row.Weight), string(row.Reps)))
	}
	span.SetAttributes(attribute.Int("rows", len(inputs)))

	view, err := handler.service.AddSets(ctx, AddSetsRequest{
		BodyPart: body.BodyPart,
		Exercise: body.Exercise,
		Sets:     inputs,
	})
	handler.writeView(w, "add sets", view, err)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (handler *Handler) HandleStartEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.start_edit")
	defer span.End()

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int64("id", id))

	view, err := handler.service.StartEdit(ctx, id)
	handler.writeView(w, "start edit", view, err)
}

func (handler *Handler) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.cancel_edit")
	defer span.End()

	view, err := handler.service.CancelEdit(ctx)
	handler.writeView(w, "cancel edit", view, err)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.update")
	defer span.End()

	var body updateBody
	if err := decodeJSON(r, &body); err != nil {
		log.Errorf("update log, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := workouts.ParseSetInput(string(body.Weight), string(body.Reps))
	view, err := handler.service.UpdateLog(ctx, UpdateRequest{
		BodyPart: body.BodyPart,
		Exercise: body.Exercise,
		Weight:   in.Weight,
		Reps:     in.Reps,
	})
	handler.writeView(w, "update log", view, err)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.delete")
	defer span.End()

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int64("id", id))

	view, err := handler.service.DeleteLog(ctx, id)
	handler.writeView(w, "delete log", view, err)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.catalog")
	defer span.End()

	catalog, err := handler.service.Catalog(ctx)
	if err != nil {
		log.Errorf("get exercise catalog: %s", err)
		http.Error(w, "get exercises failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, catalog, http.StatusOK)
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.exercises")
	defer span.End()

	bodyPart := mux.Vars(r)["bodyPart"]
	span.SetAttributes(attribute.String("body_part", bodyPart))

	names, err := handler.service.Exercises(ctx, bodyPart)
	if errors.Is(err, workouts.ErrUnknownBodyPart) {
		http.Error(w, "unknown body part", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get exercises for [%s]: %s", bodyPart, err)
		http.Error(w, "get exercises failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, names, http.StatusOK)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracker.add_exercise")
	defer span.End()

	var body addExerciseBody
	if err := decodeJSON(r, &body); err != nil {
		log.Errorf("add exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := handler.service.AddExercise(ctx, body.BodyPart, body.Name)
	handler.writeView(w, "add exercise", view, err)
}
