package handlers

// CORS header values sent with every counter response
const (
	AllowOrigin  = "*"
	AllowHeaders = "Content-Type"
	AllowMethods = "GET,POST,OPTIONS"
)

// CORSHeaders returns a fresh header map permitting cross-origin browser
// access. Callers may add to the map.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  AllowOrigin,
		"Access-Control-Allow-Headers": AllowHeaders,
		"Access-Control-Allow-Methods": AllowMethods,
	}
}
