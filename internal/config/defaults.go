package config

const (
	defaultLogDir      = "~/.local/share/tnivo/logs"
	defaultBackupDir   = "~/.local/share/tnivo/backups"
	defaultOnCollision = CollisionRename
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultHistoryKeep = 500
)

// Collision policies accepted by organize.on_collision.
const (
	CollisionRename = "rename"
	CollisionSkip   = "skip"
)

// Default returns a Config populated with repository defaults. The stock
// profiles mirror the patterns the application has always shipped with.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
		},
		Organize: Organize{
			OnCollision: defaultOnCollision,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Profiles: StockProfiles(),
	}
}

// StockProfiles returns the built-in regex profiles.
func StockProfiles() []Profile {
	return []Profile{
		{Name: "Default", Pattern: `^(.*)\..*$`},
		{Name: "Video files", Pattern: `^(.*)\.(mkv|mp4|avi|mov|wmv|flv|webm|ogv|mpg|m4v|3gp|f4v|mpeg|vob|rm|rmvb|asf|dat|mts|m2ts|ts)$`},
		{Name: "Text files", Pattern: `^(.*)\.(txt|doc|docx|odt|pdf)$`},
		{Name: "Image files", Pattern: `^(.*)\.(jpg|jpeg|png|gif|bmp|svg|tiff)$`},
	}
}
