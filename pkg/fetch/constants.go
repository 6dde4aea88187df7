package fetch

// UserAgent identifies the console to the watched application.
const UserAgent = "workshop-console"

// Indent is the pretty-print indent used for displayed JSON.
const Indent = "  "

// utf8BOM is dropped from the front of response bodies before parsing.
var utf8BOM = []byte("\xef\xbb\xbf")

// Error messages. Both failure kinds are reported as "<message>: <cause>".
const (
	ErrHTTPRequest = "network request failed"
	ErrJSONParse   = "failed to parse JSON response"
	ErrTokenSource = "failed to get access token"
)
