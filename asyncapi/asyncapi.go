package asyncapi

// Version is the AsyncAPI specification version produced by asynctools.
const Version = "3.0.0"

// Document represents an AsyncAPI 3.0 document.
// Reference: https://www.asyncapi.com/docs/reference/specification/v3.0.0
type Document struct {
	AsyncAPI           string                `yaml:"asyncapi" json:"asyncapi"` // Required: "3.0.0"
	ID                 string                `yaml:"id,omitempty" json:"id,omitempty"`
	Info               *Info                 `yaml:"info" json:"info"` // Required
	Servers            map[string]*Server    `yaml:"servers,omitempty" json:"servers,omitempty"`
	DefaultContentType string                `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`
	Channels           map[string]*Channel   `yaml:"channels,omitempty" json:"channels,omitempty"`
	Operations         map[string]*Operation `yaml:"operations,omitempty" json:"operations,omitempty"`
	Components         *Components           `yaml:"components,omitempty" json:"components,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Server describes a message broker or endpoint the application connects to.
type Server struct {
	Host            string         `yaml:"host" json:"host"`
	Protocol        string         `yaml:"protocol" json:"protocol"`
	ProtocolVersion string         `yaml:"protocolVersion,omitempty" json:"protocolVersion,omitempty"`
	Pathname        string         `yaml:"pathname,omitempty" json:"pathname,omitempty"`
	Title           string         `yaml:"title,omitempty" json:"title,omitempty"`
	Description     string         `yaml:"description,omitempty" json:"description,omitempty"`
	Bindings        map[string]any `yaml:"bindings,omitempty" json:"bindings,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Components holds reusable objects referenced from channels and operations.
type Components struct {
	Schemas  map[string]any      `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Messages map[string]*Message `yaml:"messages,omitempty" json:"messages,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
