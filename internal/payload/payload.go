// Package payload holds the request bodies of the write endpoints. Every
// payload is decoded into its raw fields first so missing, unexpected and
// mistyped fields can be reported individually.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
)

// Decode reads the JSON body of r into v and runs its Bind validation. An
// empty body decodes as an empty object. The body must hold exactly one JSON
// value.
func Decode(r *http.Request, v render.Binder) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperror.MalformedBody()
	}

	if len(bytes.TrimSpace(body)) > 0 {
		if !singleValue(body) {
			return apperror.MalformedBody()
		}

		if err := render.DecodeJSON(bytes.NewReader(body), v); err != nil {
			return apperror.MalformedBody()
		}
	}

	return v.Bind(r)
}

func singleValue(body []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(body))

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return false
	}

	return errors.Is(dec.Decode(&value), io.EOF)
}

type fields map[string]json.RawMessage

func (f fields) present(name string) bool {
	raw, ok := f[name]

	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// require reports the first absent field, in the order given.
func (f fields) require(names ...string) error {
	for _, name := range names {
		if !f.present(name) {
			return apperror.MissingField(name)
		}
	}

	return nil
}

// only reports the alphabetically first field not in allowed.
func (f fields) only(allowed ...string) error {
	var extra []string

	for name := range f {
		ok := false
		for _, a := range allowed {
			if a == name {
				ok = true

				break
			}
		}
		if !ok {
			extra = append(extra, name)
		}
	}

	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)

	return apperror.UnexpectedField(extra[0])
}

// integer decodes a JSON number with no fractional part that fits the
// database INT column. 3 and 3.0 are both 3.
func (f fields) integer(name string) (int64, error) {
	raw := bytes.TrimSpace(f[name])
	if len(raw) == 0 || raw[0] == '"' {
		return 0, apperror.InvalidType(name, "an integer")
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, apperror.InvalidType(name, "an integer")
	}

	n, err := num.Int64()
	if err != nil {
		fl, ferr := num.Float64()
		if ferr != nil || fl != math.Trunc(fl) {
			return 0, apperror.InvalidType(name, "an integer")
		}

		if fl < math.MinInt32 || fl > math.MaxInt32 {
			return 0, apperror.InvalidType(name, intRange)
		}

		n = int64(fl)
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, apperror.InvalidType(name, intRange)
	}

	return n, nil
}

const intRange = "an integer between -2147483648 and 2147483647"

// text decodes a required, non blank string.
func (f fields) text(name string) (string, error) {
	var s string
	if err := json.Unmarshal(f[name], &s); err != nil {
		return "", apperror.InvalidType(name, "a string")
	}

	if strings.TrimSpace(s) == "" {
		return "", apperror.MissingField(name)
	}

	return s, nil
}

// optionalText is text for fields that may be left out.
func (f fields) optionalText(name string) (string, error) {
	if !f.present(name) {
		return "", nil
	}

	return f.text(name)
}

// texts decodes several required strings into the given targets.
func (f fields) texts(targets map[string]*string) error {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := f.text(name)
		if err != nil {
			return err
		}
		*targets[name] = s
	}

	return nil
}
