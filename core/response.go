package core

import (
	"encoding/json"
	"net/http"
)

// HeadersJson are the default headers of every API response.
var HeadersJson = map[string]string{
	"Content-Type": "application/json; charset=utf-8",

	// mitigate MIME-type sniffing
	"X-Content-Type-Options": "nosniff",

	// credential-bearing responses must never be cached
	"Cache-Control": "no-store, no-cache, must-revalidate",

	"X-Frame-Options": "DENY",

	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

// setHeaders applies one or more sets of headers to the response writer.
// Headers from later maps overwrite headers from earlier maps on conflict.
func setHeaders(w http.ResponseWriter, headers ...map[string]string) {
	for _, headerMap := range headers {
		for key, value := range headerMap {
			w.Header().Set(key, value)
		}
	}
}

type jsonResponse struct {
	status int
	body   []byte
}

// JsonBasic contains the basic response fields. All responses have them.
type JsonBasic struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JsonWithData is used for structured JSON responses with data.
type JsonWithData struct {
	JsonBasic
	Data interface{} `json:"data,omitempty"`
}

// JsonList is used for paginated list responses. Total is the unpaginated
// row count so clients can render pagers.
type JsonList struct {
	JsonBasic
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// WriteJsonOk writes a precomputed JSON success response.
func WriteJsonOk(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

// WriteJsonError writes a precomputed JSON error response.
func WriteJsonError(w http.ResponseWriter, resp jsonResponse) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

// writeJsonWithData writes a structured JSON response with the provided data.
func writeJsonWithData(w http.ResponseWriter, resp JsonWithData) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}

// writeJsonList writes a paginated list response.
func writeJsonList(w http.ResponseWriter, code string, data interface{}, total int) {
	setHeaders(w, HeadersJson)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(JsonList{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    code,
			Message: "OK",
		},
		Data:  data,
		Total: total,
	})
}
