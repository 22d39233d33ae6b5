package database

import "net/url"

// ConstructDatabaseURL points the configured base URL at a named database.
// Deployments keep a single server URL and select the app database (or a
// throwaway test database) by name; local servers rarely speak TLS, so
// sslmode=disable is filled in unless the URL already chose a mode.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u.Path = "/" + databaseName

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
		u.RawQuery = query.Encode()
	}
	return u.String()
}
