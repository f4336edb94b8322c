package ports

// Options carries the engine-wide knobs the driver reads at startup: the
// job cap, where the persisted cache lives, and the target to build when
// none is named on the command line (spec.md §6). The task graph itself is
// populated by the maekfile calling RULE/CPP/LINK directly, not by this
// loader — maek.yaml only ever overrides these engine-level settings.
type Options struct {
	Jobs          int
	CacheFile     string
	DefaultTarget string
}

// ConfigLoader defines the interface for loading engine-level overrides
// from a maek.yaml file. Unknown keys are a hard error.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the maek.yaml at path and returns the overrides it
	// declared, applied on top of the caller's defaults. A missing file is
	// not an error: Load returns the defaults unchanged.
	Load(path string, defaults Options) (Options, error)
}
