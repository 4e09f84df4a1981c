package config

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// LLMConfig configures the model provider used for schedule generation.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"` // empty = provider default
	Timeout  string `yaml:"timeout"`

	// Temperature for generation; 0 leaves the provider default.
	Temperature float32 `yaml:"temperature"`
}
