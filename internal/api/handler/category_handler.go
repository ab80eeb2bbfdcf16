package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/api/metrics"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// CategoryHandler handles the appointment catalog.
type CategoryHandler struct {
	service      ports.CategoryService
	maxImageSize int64
}

func NewCategoryHandler(service ports.CategoryService, maxImageSize int64) *CategoryHandler {
	return &CategoryHandler{service: service, maxImageSize: maxImageSize}
}

// Create handles POST /api/v1/appointment/create.
//
// @Summary      Create an appointment category
// @Tags         appointments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image          formData  file    true   "Category image (categoryImage is also accepted)"
// @Param        title          formData  string  true   "Title"
// @Param        description    formData  string  true   "Description"
// @Param        duration       formData  string  true   "Duration"
// @Param        addsOn         formData  string  false  "JSON array of {title, time}"
// @Param        availableDate  formData  string  false  "JSON array of dates"
// @Success      201            {object}  categoryResponse
// @Failure      400            {object}  errorResponse
// @Failure      403            {object}  errorResponse
// @Router       /appointment/create [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	form, err := parseCategoryForm(c)
	if err != nil {
		return err
	}
	addOns, err := form.addOns()
	if err != nil {
		return err
	}
	dates, err := form.dates()
	if err != nil {
		return err
	}
	image, file, err := form.upload(h.maxImageSize)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	in := ports.CreateCategoryInput{
		Image:       image,
		Title:       form.text("title"),
		Description: form.text("description"),
		Duration:    form.text("duration"),
	}
	if addOns != nil {
		in.AddsOn = *addOns
	}
	if dates != nil {
		in.AvailableDates = *dates
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), in)
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// Update handles PUT /api/v1/appointment/update/:id. Only submitted fields
// change; an omitted image keeps the current one.
//
// @Summary      Update an appointment category
// @Tags         appointments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id             path      string  true   "Category ID"
// @Param        image          formData  file    false  "New image (categoryImage is also accepted)"
// @Param        title          formData  string  false  "Title"
// @Param        description    formData  string  false  "Description"
// @Param        duration       formData  string  false  "Duration"
// @Param        addsOn         formData  string  false  "JSON array of {title, time}"
// @Param        availableDate  formData  string  false  "JSON array of dates"
// @Success      200            {object}  categoryResponse
// @Failure      400            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /appointment/update/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	form, err := parseCategoryForm(c)
	if err != nil {
		return err
	}
	addOns, err := form.addOns()
	if err != nil {
		return err
	}
	dates, err := form.dates()
	if err != nil {
		return err
	}
	image, file, err := form.upload(h.maxImageSize)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title, _ := form.str("title")
	description, _ := form.str("description")
	duration, _ := form.str("duration")

	cat, err := h.service.UpdateCategory(c.Request().Context(), c.Param("id"), ports.UpdateCategoryInput{
		Image:          image,
		Title:          title,
		Description:    description,
		Duration:       duration,
		AddsOn:         addOns,
		AvailableDates: dates,
	})
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// List handles GET /api/v1/appointment.
//
// @Summary      List appointment categories
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  categoryListResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointment [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryList(cats))
}

// ListFromDate handles GET /api/v1/appointment/:date. Path dates must be ISO
// since the slash form cannot sit in a path segment.
//
// @Summary      List categories open on or after a date
// @Tags         appointments
// @Produce      json
// @Param        date  path      string  true  "YYYY-MM-DD"
// @Success      200   {object}  categoryListResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /appointment/{date} [get]
func (h *CategoryHandler) ListFromDate(c echo.Context) error {
	cats, err := h.service.ListCategoriesFromDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryList(cats))
}

// Get handles GET /api/v1/appointment/single/:id.
//
// @Summary      Get an appointment category
// @Tags         appointments
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointment/single/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	cat, err := h.service.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Delete handles DELETE /api/v1/appointment/delete/:id.
//
// @Summary      Delete an appointment category
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointment/delete/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "appointment deleted"})
}
