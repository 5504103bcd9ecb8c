package export

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/readease/pkg/markdown"
	"github.com/jmylchreest/readease/pkg/sanitize"
)

// Options configures an Exporter.
type Options struct {
	// Format is the artifact callers usually want; Export always builds all
	// three.
	Format Format `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text html markdown"`

	// Markdown configures the serializer.
	Markdown markdown.Options `json:"markdown" yaml:"markdown" mapstructure:"markdown"`

	// Sanitize configures element and attribute removal. Nil uses
	// sanitize.DefaultConfig().
	Sanitize *sanitize.Config `json:"sanitize,omitempty" yaml:"sanitize,omitempty" mapstructure:"sanitize" validate:"-"`

	// DedupeTitle avoids repeating a title the content already opens with.
	DedupeTitle bool `json:"dedupe_title" yaml:"dedupe_title" mapstructure:"dedupe_title"`

	// PrettyHTML indents the HTML artifact.
	PrettyHTML bool `json:"pretty_html" yaml:"pretty_html" mapstructure:"pretty_html"`
}

// DefaultOptions returns Markdown export with the default serializer and
// sanitizer settings.
func DefaultOptions() Options {
	return Options{
		Format:      FormatMarkdown,
		Markdown:    markdown.DefaultOptions(),
		DedupeTitle: true,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks option values.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid export options: %w", err)
	}
	return nil
}
