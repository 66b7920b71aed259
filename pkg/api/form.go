package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"

	"github.com/Ramsey-B/collably/pkg/httpclient"
	"github.com/Ramsey-B/collably/pkg/models"
)

// Form is a multipart form-data body
type Form struct {
	Fields map[string]string
	Files  []models.Attachment
}

// NewForm flattens a JSON-tagged input into form fields. Nested objects are sent as
// JSON strings, which is how the API reads socialMediaLinks.
func NewForm(input any, files ...*models.Attachment) (*Form, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form input: %w", err)
	}

	values := map[string]any{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("form input must be an object: %w", err)
	}

	form := &Form{Fields: make(map[string]string, len(values))}
	for name, value := range values {
		switch v := value.(type) {
		case nil:
		case string:
			form.Fields[name] = v
		case map[string]any, []any:
			nested, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			form.Fields[name] = string(nested)
		default:
			form.Fields[name] = fmt.Sprint(v)
		}
	}

	for _, file := range files {
		if file != nil && file.Path != "" {
			form.Files = append(form.Files, *file)
		}
	}

	return form, nil
}

// Encode writes the form as multipart and returns the body with its content type
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, f.Fields[name]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	for _, file := range f.Files {
		if err := writeFile(writer, file); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	if buf.Len() > httpclient.MaxRequestSize {
		return nil, "", fmt.Errorf("request body too large: %d bytes (max %d)", buf.Len(), httpclient.MaxRequestSize)
	}

	return &buf, writer.FormDataContentType(), nil
}

func writeFile(writer *multipart.Writer, attachment models.Attachment) error {
	file, err := os.Open(attachment.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", attachment.Path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(attachment.Field, filepath.Base(attachment.Path))
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", attachment.Field, err)
	}
	if _, err := io.Copy(part, io.LimitReader(file, httpclient.MaxRequestSize+1)); err != nil {
		return fmt.Errorf("failed to read %s: %w", attachment.Path, err)
	}
	return nil
}

// Body picks a multipart form when an attachment is present and a JSON body otherwise
func Body(input any, attachment *models.Attachment) (Request, error) {
	if attachment == nil || attachment.Path == "" {
		return Request{JSON: input}, nil
	}
	form, err := NewForm(input, attachment)
	if err != nil {
		return Request{}, err
	}
	return Request{Form: form}, nil
}
