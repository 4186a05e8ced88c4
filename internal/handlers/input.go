package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// maxFormBytes bounds casino and page write bodies. Page sections can carry
// long HTML, so the limit is generous.
const maxFormBytes = 2 << 20

// listSeparators joins JSON string arrays back into the form encoding the
// content layer splits on.
var listSeparators = map[string]string{
	"paymentMethods": ",",
	"pros":           "\n",
	"cons":           "\n",
}

// readForm returns the submitted write fields. Form-encoded and multipart
// bodies are used as is; a JSON object is flattened to the same field names
// with nested objects and arrays kept as raw JSON.
func readForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return formFromJSON(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	return r.PostForm, nil
}

func formFromJSON(r *http.Request) (url.Values, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	form := url.Values{}
	for key, msg := range raw {
		v, ok, err := jsonFieldValue(key, msg)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if ok {
			form.Set(key, v)
		}
	}
	return form, nil
}

// jsonFieldValue renders one JSON value as a form value. null reports
// not-submitted.
func jsonFieldValue(key string, msg json.RawMessage) (string, bool, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || string(msg) == "null" {
		return "", false, nil
	}
	switch msg[0] {
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case '[':
		if sep, ok := listSeparators[key]; ok {
			var items []string
			if err := json.Unmarshal(msg, &items); err == nil {
				return strings.Join(items, sep), true, nil
			}
		}
	}
	return string(msg), true, nil
}

// formErrorMessage turns a body read failure into a client message.
func formErrorMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "Request body too large"
	}
	return "Invalid request body"
}
