package api

import "github.com/pish-pish/bmc2json/pkg/bmc"

// PaletteInfo is one library entry in list responses.
type PaletteInfo struct {
	Name    string `json:"name"`
	Bytes   int64  `json:"bytes"`
	Entries int    `json:"entries"` // -1 when the file does not decode
}

// PaletteListResponse is the body of GET /v1/palettes.
type PaletteListResponse struct {
	Palettes []PaletteInfo `json:"palettes"`
}

// PaletteResponse is the body of GET /v1/palettes/:name.
type PaletteResponse struct {
	Name     string       `json:"name"`
	Entries  int          `json:"entries"`
	Document bmc.Document `json:"document"`
}

// ExportResponse is the body of POST /v1/convert/export.
type ExportResponse struct {
	ID       string       `json:"id"`
	Entries  int          `json:"entries"`
	Document bmc.Document `json:"document"`
}

// ResponseError is the payload inside the {"error": ...} envelope carried
// by every non-2xx response.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
