package driven

// Settings is the persisted application configuration.
type Settings struct {
	// FeedURLs are the candidate locations of the harvester artifact,
	// tried in order.
	FeedURLs []string

	// ArtifactPath is a local artifact file, preferred over FeedURLs
	// when set.
	ArtifactPath string

	// ICSFeeds are calendar feed URLs for the harvest command.
	ICSFeeds []string

	// Keywords, City, State and Country describe the harvest search.
	Keywords []string
	City     string
	State    string
	Country  string

	// WindowDays bounds how far ahead the harvest command looks.
	WindowDays int

	// DataDir is where snapshots and other state live.
	DataDir string
}

// ConfigStore loads and persists application settings.
type ConfigStore interface {
	// Load returns the current settings, with defaults applied.
	Load() (*Settings, error)

	// Save persists the settings.
	Save(settings *Settings) error

	// Path returns the backing file path, for display.
	Path() string
}
