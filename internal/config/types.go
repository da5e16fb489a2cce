package config

// Config is the top-level docpress configuration, corresponding to .docpress.yml.
type Config struct {
	DocumentsDir    string            `yaml:"documents_dir" koanf:"documents_dir"`
	TemplatesDir    string            `yaml:"templates_dir,omitempty" koanf:"templates_dir"`
	StaticDir       string            `yaml:"static_dir" koanf:"static_dir"`
	FragmentPattern string            `yaml:"fragment_pattern" koanf:"fragment_pattern"`
	HighlightStyle  string            `yaml:"highlight_style" koanf:"highlight_style"`
	InlineImages    bool              `yaml:"inline_images" koanf:"inline_images"`
	Style           map[string]string `yaml:"style,omitempty" koanf:"style"`
	Server          ServerConfig      `yaml:"server" koanf:"server"`
	OutputDir       string            `yaml:"output_dir" koanf:"output_dir"`
}

// ServerConfig holds settings for docpress serve.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
