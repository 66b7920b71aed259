package twin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
)

// bindBody decodes a JSON or multipart body into dst, overwriting only the fields present
func bindBody(c echo.Context, dst any) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	return decodeInto(raw, dst)
}

// readBody returns the request body as JSON. Multipart fields holding JSON objects are
// kept as nested values; uploaded files are recorded as /uploads/<name> under their
// field name.
func readBody(c echo.Context) ([]byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid request body: %v", err)
		}
		return raw, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid form: %v", err)
	}

	values := map[string]any{}
	for name, fieldValues := range form.Value {
		if len(fieldValues) == 0 {
			continue
		}
		value := fieldValues[0]
		trimmed := strings.TrimSpace(value)
		if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
			values[name] = json.RawMessage(trimmed)
			continue
		}
		values[name] = formValue(name, value)
	}
	for name, files := range form.File {
		if len(files) > 0 {
			values[name] = "/uploads/" + filepath.Base(files[0].Filename)
		}
	}

	return json.Marshal(values)
}

func decodeInto(raw []byte, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid request body: %v", err)
	}
	return nil
}

// formValue keeps numeric form fields numeric so they decode into number typed fields
func formValue(name, value string) any {
	switch name {
	case "price", "quantity", "clicks":
		if json.Valid([]byte(value)) {
			return json.RawMessage(value)
		}
	}
	return value
}

func message(text string) map[string]string {
	return map[string]string{"message": text}
}
