package adapter

// Usage captures normalized token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response wraps a model's text output with call metadata.
type Response struct {
	Content string
	Adapter string
	Model   string
	Usage   *Usage
}
