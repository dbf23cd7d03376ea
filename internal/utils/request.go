package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// QueryInt lit un paramètre de query entier avec valeur par défaut
func QueryInt(query url.Values, key string, fallback int) int {
	if v := query.Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// QueryBool lit un paramètre de query booléen (absent = false)
func QueryBool(query url.Values, key string) bool {
	b, err := strconv.ParseBool(query.Get(key))
	return err == nil && b
}

// QueryDate lit un paramètre de query au format YYYY-MM-DD.
// Retourne nil sans erreur si le paramètre est absent.
func QueryDate(query url.Values, key string) (*time.Time, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q for %s, expected YYYY-MM-DD", v, key)
	}
	return &d, nil
}
