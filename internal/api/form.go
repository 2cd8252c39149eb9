package api

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
)

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// Form is a multipart request body. The boundary is chosen when the form is
// encoded, so callers never set a content type themselves.
type Form struct {
	fields [][2]string
	files  []formFile
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

func (f *Form) File(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", errors.Wrapf(err, "failed to write field %s", kv[0])
		}
	}

	for _, ff := range f.files {
		part, err := w.CreateFormFile(ff.field, ff.filename)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to create file part %s", ff.field)
		}
		if _, err := io.Copy(part, ff.content); err != nil {
			return nil, "", errors.Wrapf(err, "failed to copy file %s", ff.filename)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to close multipart writer")
	}

	return buf, w.FormDataContentType(), nil
}
