package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/core/ports"
)

// categoryForm is a parsed catalog submission. addsOn and availableDate
// arrive as JSON-encoded strings inside the form.
type categoryForm struct {
	values url.Values
	image  *multipart.FileHeader
}

// imageFields are the multipart file fields accepted for the category image,
// in order of preference.
var imageFields = []string{"image", "categoryImage"}

func parseCategoryForm(c echo.Context) (*categoryForm, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
		}
		f := &categoryForm{values: url.Values(form.Value)}
		for _, field := range imageFields {
			if files := form.File[field]; len(files) > 0 {
				f.image = files[0]
				break
			}
		}
		return f, nil
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	return &categoryForm{values: values}, nil
}

func (f *categoryForm) str(key string) (*string, bool) {
	vs, ok := f.values[key]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	v := vs[0]
	return &v, true
}

func (f *categoryForm) text(key string) string {
	if v, ok := f.str(key); ok {
		return *v
	}
	return ""
}

func (f *categoryForm) addOns() (*[]ports.AddOnInput, error) {
	raw, ok := f.str("addsOn")
	if !ok || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	var reqs []addOnRequest
	if err := json.Unmarshal([]byte(*raw), &reqs); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "addsOn must be a JSON array of {title, time}")
	}
	in := toAddOnInputs(reqs)
	return &in, nil
}

func (f *categoryForm) dates() (*[]string, error) {
	raw, ok := f.str("availableDate")
	if !ok || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	var dates []string
	if err := json.Unmarshal([]byte(*raw), &dates); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "availableDate must be a JSON array of dates")
	}
	return &dates, nil
}

// upload opens the image part. The caller closes the returned file.
func (f *categoryForm) upload(maxBytes int64) (*ports.UploadInput, multipart.File, error) {
	if f.image == nil {
		return nil, nil, nil
	}
	if maxBytes > 0 && f.image.Size > maxBytes {
		return nil, nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d bytes", maxBytes))
	}
	ct := f.image.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, "image/") {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "image must be an image file")
	}

	file, err := f.image.Open()
	if err != nil {
		return nil, nil, errors.Join(errors.New("open image part"), err)
	}
	return &ports.UploadInput{
		Filename:    f.image.Filename,
		ContentType: ct,
		Size:        f.image.Size,
		Body:        file,
	}, file, nil
}
