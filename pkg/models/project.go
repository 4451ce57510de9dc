package models

// Author identifies who a generated project is attributed to.
type Author struct {
	Name  string `yaml:"name" json:"name" mapstructure:"name"`
	Email string `yaml:"email" json:"email,omitempty" mapstructure:"email"`
	URL   string `yaml:"url" json:"url,omitempty" mapstructure:"url"`
}

// Engine names the database server a template talks to.
type Engine string

const (
	EngineMongoDB    Engine = "MongoDB"
	EnginePostgreSQL Engine = "PostgreSQL"
)
