package plans

// Plan describes one subscription tier and the limits it grants.
type Plan struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	MaxStorageMB      float64 `yaml:"max_storage_mb"`
	MaxFileSizeMB     float64 `yaml:"max_file_size_mb"`
	MaxCollaborators  int     `yaml:"max_collaborators"`
	PrivateEntities   bool    `yaml:"private_entities"`
	PublishingEnabled bool    `yaml:"publishing_enabled"`
}

// planFile is the shape of the embedded YAML document.
type planFile struct {
	Plans []Plan `yaml:"plans"`
}
