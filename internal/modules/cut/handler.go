package cut

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"recortes/internal/middleware"
	"recortes/internal/pkg/response"
	"recortes/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
// @Summary Create a cut
// @Description Uploads the image under a metadata-derived object name and persists the cut owned by the caller.
// @Tags Cuts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param sku formData string true "SKU"
// @Param modelName formData string true "Model name"
// @Param cutType formData string true "Cut type"
// @Param position formData string true "Position"
// @Param productType formData string true "Product type"
// @Param material formData string true "Material"
// @Param materialColor formData string true "Material color"
// @Param displayOrder formData integer true "Display order (positive)"
// @Param status formData string false "Status" Enums(ACTIVE, EXPIRED, PENDING)
// @Param image formData file true "Image file"
// @Success 201 {object} domain.Cut
// @Failure 400,401,500 {object} map[string]interface{}
// @Router /cuts [post]
func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCutRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, toFieldIssues(issues))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), identity, req, formImage(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List the caller's cuts
// @Description Paginated, filterable by sku, cutType and status, sorted ascending by sortBy (default displayOrder).
// @Tags Cuts
// @Produce json
// @Security BearerAuth
// @Param page query integer false "Page (default 1)"
// @Param limit query integer false "Items per page (default 10)"
// @Param sku query string false "Filter by SKU"
// @Param cutType query string false "Filter by cut type"
// @Param status query string false "Filter by status" Enums(ACTIVE, EXPIRED, PENDING)
// @Param sortBy query string false "Sort field"
// @Success 200 {object} ListCutsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /cuts [get]
func (h *Handler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.svc.List(c.Request.Context(), identity, ListCutsQuery{
		Page:    page,
		PerPage: perPage,
		SKU:     c.Query("sku"),
		CutType: c.Query("cutType"),
		Status:  c.Query("status"),
		SortBy:  c.Query("sortBy"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get one cut by id
// @Tags Cuts
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Cut ID"
// @Success 200 {object} domain.Cut
// @Failure 401,404 {object} map[string]interface{}
// @Router /cuts/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Cut not found")
		return
	}

	found, err := h.svc.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// Update godoc
// @Summary Update a cut
// @Description Partial update; only fields present in the form are applied. An attached image re-runs the upload path and replaces imageUrl.
// @Tags Cuts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Cut ID"
// @Param image formData file false "Replacement image"
// @Success 200 {object} domain.Cut
// @Failure 400,401,404,500 {object} map[string]interface{}
// @Router /cuts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid cut ID")
		return
	}

	var req UpdateCutRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, toFieldIssues(issues))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), identity, id, req, formImage(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Remove godoc
// @Summary Delete a cut and its image
// @Description Best-effort blob removal followed by unconditional row deletion.
// @Tags Cuts
// @Security BearerAuth
// @Param id path integer true "Cut ID"
// @Success 204
// @Failure 401,404,500 {object} map[string]interface{}
// @Router /cuts/{id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Cut not found")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), identity, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrImageRequired):
		response.Message(c, http.StatusBadRequest, "Image file is required")
	case errors.Is(err, ErrNotAnImage):
		response.ValidationFailed(c, []response.FieldIssue{
			{Field: "image", Issue: "File must be an image"},
		})
	case errors.Is(err, ErrInvalidDisplayOrder):
		response.ValidationFailed(c, []response.FieldIssue{
			{Field: "displayOrder", Issue: "Display order must be a positive integer"},
		})
	case errors.Is(err, ErrInvalidStatus):
		response.ValidationFailed(c, []response.FieldIssue{
			{Field: "status", Issue: "status must be one of: ACTIVE EXPIRED PENDING"},
		})
	case errors.Is(err, ErrNotFound):
		response.Message(c, http.StatusNotFound, "Cut not found")
	default:
		_ = c.Error(err)
		response.Message(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// formImage returns the uploaded image file or nil when none was sent.
func formImage(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

func toFieldIssues(issues []validator.Issue) []response.FieldIssue {
	out := make([]response.FieldIssue, 0, len(issues))
	for _, i := range issues {
		out = append(out, response.FieldIssue{Field: i.Field, Issue: i.Text})
	}
	return out
}
