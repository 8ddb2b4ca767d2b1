package search

// Result is one search hit.
type Result struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Path     string   `json:"path"`
	Keywords []string `json:"keywords"`
}

// Item is one listing row.
type Item struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Path     string `json:"path"`
}

// maxResultKeywords bounds the keywords reported per search result.
const maxResultKeywords = 5
