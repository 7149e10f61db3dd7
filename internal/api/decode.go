package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// isJSON reports whether the request body is declared as JSON.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeJSON decodes the body into dst. Type mismatches are validation errors.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var valErr *validationError
		if errors.As(err, &valErr) {
			return err
		}
		return invalid(fmt.Sprintf("could not decode JSON body: %v", err))
	}
	return nil
}

// numberReader coerces JSON numbers, quoted or not, keeping the first failure.
type numberReader struct {
	err error
}

func (n *numberReader) float(key string, v json.Number) float64 {
	if v == "" || n.err != nil {
		return 0
	}
	f, err := v.Float64()
	if err != nil {
		n.err = invalid(fmt.Sprintf("%s must be a number", key))
	}
	return f
}

func (n *numberReader) int(key string, v json.Number) int64 {
	if v == "" || n.err != nil {
		return 0
	}
	i, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		n.err = invalid(fmt.Sprintf("%s must be an integer", key))
	}
	return i
}

// formReader coerces form and query values, keeping the first failure.
type formReader struct {
	r   *http.Request
	err error
}

func newFormReader(r *http.Request) (*formReader, error) {
	if err := r.ParseForm(); err != nil {
		return nil, invalid(fmt.Sprintf("could not parse form: %v", err))
	}
	return &formReader{r: r}, nil
}

func (f *formReader) has(key string) bool {
	_, ok := f.r.Form[key]
	return ok
}

func (f *formReader) str(key string) string {
	return f.r.Form.Get(key)
}

func (f *formReader) float(key string) float64 {
	raw := strings.TrimSpace(f.r.Form.Get(key))
	if raw == "" || f.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.err = invalid(fmt.Sprintf("%s must be a number", key))
	}
	return v
}

func (f *formReader) int(key string) int64 {
	raw := strings.TrimSpace(f.r.Form.Get(key))
	if raw == "" || f.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.err = invalid(fmt.Sprintf("%s must be an integer", key))
	}
	return v
}

// optInt returns nil when key is absent or empty.
func (f *formReader) optInt(key string) *int64 {
	if strings.TrimSpace(f.r.Form.Get(key)) == "" {
		return nil
	}
	v := f.int(key)
	if f.err != nil {
		return nil
	}
	return &v
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid(fmt.Sprintf("id must be an integer, got %q", raw))
	}
	return id, nil
}
