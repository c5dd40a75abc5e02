package handlers

import (
	"net/http"

	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
	"github.com/Rudio1/api-meals/internal/transport/http/dto"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

type MealsHandler struct {
	service  *content.MealService
	failures Failures
}

func NewMealsHandler(service *content.MealService, failures Failures) *MealsHandler {
	return &MealsHandler{service: service, failures: failures}
}

func (h *MealsHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ListResponse[model.MealType]{Items: types, Total: len(types)})
}

func (h *MealsHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMealTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.CreateType(r.Context(), req.Name)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, created)
}

func (h *MealsHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	if err := h.service.DeleteType(r.Context(), id); err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "meal type deleted"})
}

func (h *MealsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	meals, err := h.service.ListMine(r.Context(), identity, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ListResponse[model.Meal]{Items: meals, Total: len(meals)})
}

func (h *MealsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	meal, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, meal)
}

func (h *MealsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateMealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	meal, err := h.service.Create(r.Context(), identity, content.MealInput{
		TypeID:      req.TypeID,
		Description: req.Description,
		DateTime:    req.DateTime,
	})
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, meal)
}

func (h *MealsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	var req dto.UpdateMealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	meal, err := h.service.Update(r.Context(), identity, id, content.MealPatch{
		TypeID:      req.TypeID,
		Description: req.Description,
		DateTime:    req.DateTime,
	})
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, meal)
}

func (h *MealsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "meal deleted"})
}
