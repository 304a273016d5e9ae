package documents

import (
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
)

// Config holds the options a file search can be built from.
type Config struct {
	google.QueryOptions

	FolderID      string
	Title         string
	ExactTitle    bool
	ShowDeleted   bool
	ShowFolders   bool
	Collaborators []string `validate:"dive,email"`
	Readers       []string `validate:"dive,email"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{QueryOptions: google.DefaultQueryOptions()}
}

// ParseConfig reads the shared keys plus folder_id, title, exact_title,
// show_deleted, show_folders and the comma-separated collaborators and
// readers.
func ParseConfig(params map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	p := google.NewParams(params)

	cfg.Read(p)
	p.String("folder_id", &cfg.FolderID)
	p.String("title", &cfg.Title)
	p.Bool("exact_title", &cfg.ExactTitle)
	p.Bool("show_deleted", &cfg.ShowDeleted)
	p.Bool("show_folders", &cfg.ShowFolders)
	p.Strings("collaborators", &cfg.Collaborators)
	p.Strings("readers", &cfg.Readers)

	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := google.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Query builds the query the configuration describes.
func (c *Config) Query() (*Query, error) {
	q := NewQuery("")
	if err := c.Apply(&q.Query); err != nil {
		return nil, err
	}
	q.SetFolderID(c.FolderID)
	q.SetTitle(c.Title, c.ExactTitle)
	q.SetShowDeleted(c.ShowDeleted)
	q.SetShowFolders(c.ShowFolders)
	for _, a := range c.Collaborators {
		q.AddCollaborator(a)
	}
	for _, a := range c.Readers {
		q.AddReader(a)
	}
	return q, nil
}

// ParseQuery turns option pairs into a Query.
func ParseQuery(params map[string]string) (*Query, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}
	return cfg.Query()
}
