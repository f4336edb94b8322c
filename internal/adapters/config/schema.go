package config

// file is the on-disk shape of maek.yaml: engine-level overrides only. The
// task graph itself is never expressed here — it comes from the maekfile
// calling RULE/CPP/LINK directly (spec.md §6).
type file struct {
	Jobs          *int    `yaml:"jobs"`
	CacheFile     *string `yaml:"cacheFile"`
	DefaultTarget *string `yaml:"defaultTarget"`
}
