package handler

import (
	"encoding/json"
	"net/http"

	"docscript/internal/delivery/dto"
	"docscript/internal/usecase"
	"docscript/pkg/response"
	"docscript/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.Success(w, http.StatusOK, "", users)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	user, err := h.userUsecase.DeleteUser(r.Context(), id)
	if err != nil {
		h.writeUserError(w, err, "Failed to delete user")
		return
	}

	response.Success(w, http.StatusOK, "User deleted", user)
}

func (h *UserHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	user, err := h.userUsecase.MakeAdmin(r.Context(), id)
	if err != nil {
		h.writeUserError(w, err, "Failed to promote user")
		return
	}

	response.Success(w, http.StatusOK, "User promoted to ADMIN", user)
}

func (h *UserHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	user, err := h.userUsecase.ApproveUser(r.Context(), id)
	if err != nil {
		h.writeUserError(w, err, "Failed to approve user")
		return
	}

	response.Success(w, http.StatusOK, "User approved", user)
}

func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		details := h.validator.FormatValidationErrors(err)
		response.ValidationError(w, requiredMessage(details, credentialsRequired), details)
		return
	}

	res, err := h.userUsecase.CreateAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already in use")
		default:
			response.InternalServerError(w, "Failed to create admin")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Admin created successfully", res)
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrUserNotFound:
		response.NotFound(w, "User not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
