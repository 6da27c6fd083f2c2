package server

type ListKindsRequest struct {
	Profile string `json:"profile,omitempty"`
}

type KindSummary struct {
	Name   string   `json:"name"`
	Stem   string   `json:"stem"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Count  int      `json:"count"`
}

type ListKindsResponse struct {
	Kinds []KindSummary `json:"kinds"`
}

type ExportRecordsRequest struct {
	Profile string `json:"profile,omitempty"`
	Kind    string `json:"kind"`
}

type ExportRecordsResponse struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
	Count    int    `json:"count"`
}

// ImportRecordsRequest carries the uploaded file. Content is base64 in JSON.
type ImportRecordsRequest struct {
	Profile  string `json:"profile,omitempty"`
	Kind     string `json:"kind"`
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
	DryRun   bool   `json:"dryRun,omitempty"`
}

type ImportRecordsResponse struct {
	Parsed  int `json:"parsed"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
