package github

// FileContent represents the decoded content of a repository file.
type FileContent struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

// apiContentResponse is the GitHub API response for file content.
type apiContentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
