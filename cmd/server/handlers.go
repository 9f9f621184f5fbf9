package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/icco/gamecrm"
	"github.com/icco/gamecrm/hubspot"
	"go.uber.org/zap"
)

const (
	listTitle = "Games | HubSpot APIs"
	formTitle = "Create / Update Game"

	maxBodyBytes = 1 << 20
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error" example:"missing game id"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Healthy  string `json:"healthy"`
	Revision string `json:"revision"`
	Tag      string `json:"tag"`
	Branch   string `json:"branch"`
}

type homePage struct {
	Title string
	Games []gamecrm.Game
}

type formPage struct {
	Title string
	gamecrm.Catalog
	Games    []gamecrm.Game
	Selected gamecrm.Game
}

// @Summary List games
// @Description Renders every Games record (first page of 100). Upstream failures render an empty list.
// @Tags games
// @Produce html
// @Success 200 {string} string "HTML list page"
// @Router / [get]
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	games := s.listGames(r.Context(), "could not fetch games")

	if err := Renderer.HTML(w, http.StatusOK, "homepage", homePage{Title: listTitle, Games: games}); err != nil {
		log.Errorw("failed to render HTML", zap.Error(err))
	}
}

// @Summary Create / update form
// @Description Renders the form with option catalogs and the existing games. `selected` pre-fills the form from that record.
// @Tags games
// @Produce html
// @Param selected query string false "Game id to edit"
// @Success 200 {string} string "HTML form page"
// @Router /update-cobj [get]
func (s *Server) formHandler(w http.ResponseWriter, r *http.Request) {
	games := s.listGames(r.Context(), "could not fetch games for update form")

	page := formPage{
		Title:   formTitle,
		Catalog: gamecrm.DefaultCatalog(),
		Games:   games,
	}

	selected := strings.TrimSpace(r.URL.Query().Get("selected"))
	if g, ok := gamecrm.FindGame(games, selected); ok {
		page.Selected = g
	} else if selected != "" {
		log.Warnw("selected game not found", "id", selected)
	}

	if err := Renderer.HTML(w, http.StatusOK, "update-cobj", page); err != nil {
		log.Errorw("failed to render HTML", zap.Error(err))
	}
}

// @Summary Create or update a game
// @Description With no existing_id a record is created, otherwise that record is updated. Accepts form or JSON bodies.
// @Tags games
// @Accept x-www-form-urlencoded
// @Accept json
// @Param existing_id formData string false "Id of the record to update"
// @Param game_name formData string true "Game name"
// @Param platform_availability formData []string false "Platforms" collectionFormat(multi)
// @Success 302 {string} string "Redirect to / on success, /update-cobj on failure"
// @Router /update-cobj [post]
func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := readSubmission(w, r)
	if err != nil {
		log.Errorw("could not read submission", zap.Error(err))
		http.Redirect(w, r, "/update-cobj", http.StatusFound)
		return
	}

	m := sub.Classify()
	var obj *hubspot.Object
	switch m.Kind {
	case gamecrm.MutationUpdate:
		obj, err = s.crm.Update(r.Context(), m.ID, m.Properties)
	default:
		obj, err = s.crm.Create(r.Context(), m.Properties)
	}
	if err != nil {
		logUpstreamError("could not save game", err, "mutation", m.Kind.String(), "id", m.ID)
		http.Redirect(w, r, "/update-cobj", http.StatusFound)
		return
	}

	id := m.ID
	if obj != nil && obj.ID != "" {
		id = obj.ID
	}
	log.Infow("saved game", "mutation", m.Kind.String(), "id", id)

	http.Redirect(w, r, "/", http.StatusFound)
}

// @Summary Delete a game
// @Description Deletes the record. Upstream errors are passed through with their status.
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 204 {string} string "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /delete-cobj/{id} [delete]
func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParamFromCtx(r.Context(), "id"))
	if id == "" {
		if err := Renderer.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing game id"}); err != nil {
			log.Errorw("failed to render JSON", zap.Error(err))
		}
		return
	}

	if err := s.crm.Delete(r.Context(), id); err != nil {
		logUpstreamError("could not delete game", err, "id", id)

		status := http.StatusInternalServerError
		var body interface{} = ErrorResponse{Error: err.Error()}
		if apiErr, ok := hubspot.AsAPIError(err); ok {
			status, body = upstreamResponse(apiErr)
		}

		if err := Renderer.JSON(w, status, body); err != nil {
			log.Errorw("failed to render JSON", zap.Error(err))
		}
		return
	}

	log.Infow("deleted game", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Health check
// @Description Returns service health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := Renderer.JSON(w, http.StatusOK, HealthResponse{
		Healthy:  "true",
		Revision: s.cfg.Revision,
		Tag:      s.cfg.Tag,
		Branch:   s.cfg.Branch,
	}); err != nil {
		log.Errorw("failed to render JSON", zap.Error(err))
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	if err := Renderer.JSON(w, http.StatusNotFound, ErrorResponse{
		Error: "404: This page could not be found",
	}); err != nil {
		log.Errorw("failed to render JSON", zap.Error(err))
	}
}

// listGames never fails. Errors are logged and an empty list comes back.
func (s *Server) listGames(ctx context.Context, msg string) []gamecrm.Game {
	objs, err := s.crm.List(ctx, gamecrm.ListProperties, hubspot.MaxPageSize)
	if err != nil {
		logUpstreamError(msg, err)
		return []gamecrm.Game{}
	}
	return gamecrm.GamesFromObjects(objs)
}

// readSubmission parses a urlencoded, multipart or JSON body.
func readSubmission(w http.ResponseWriter, r *http.Request) (gamecrm.Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return gamecrm.Submission{}, fmt.Errorf("read body: %w", err)
		}
		return gamecrm.SubmissionFromJSON(data)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return gamecrm.Submission{}, fmt.Errorf("parse multipart form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return gamecrm.Submission{}, fmt.Errorf("parse form: %w", err)
		}
	}

	return gamecrm.SubmissionFromForm(r.PostForm), nil
}

// upstreamResponse picks the status and body to hand back for a HubSpot
// error. JSON bodies pass through untouched. Anything else is reduced to its
// text, since proxies in front of HubSpot answer with HTML error pages.
func upstreamResponse(apiErr *hubspot.APIError) (int, interface{}) {
	status := apiErr.StatusCode
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}

	if len(apiErr.Body) > 0 && json.Valid(apiErr.Body) {
		return status, json.RawMessage(apiErr.Body)
	}
	msg := strings.TrimSpace(ugcPolicy.Sanitize(apiErr.Message()))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return status, ErrorResponse{Error: msg}
}

func logUpstreamError(msg string, err error, keysAndValues ...interface{}) {
	if apiErr, ok := hubspot.AsAPIError(err); ok {
		keysAndValues = append(keysAndValues, "status", apiErr.StatusCode, "body", string(apiErr.Body))
	}
	keysAndValues = append(keysAndValues, zap.Error(err))
	log.Errorw(msg, keysAndValues...)
}
