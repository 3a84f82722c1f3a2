package cli

import "platina/internal/config"

// Flags holds command-line flags
type Flags struct {
	Update     bool
	GoldenPath string
	NameFilter string
	Tester     string
	FailFast   bool
	Watch      bool
	OpenViewer bool
	Cases      bool
	CaseFilter string
	Verbose    bool
	ConfigFile string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Update:     f.Update,
		GoldenPath: f.GoldenPath,
		NameFilter: f.NameFilter,
		Tester:     f.Tester,
		FailFast:   f.FailFast,
		Watch:      f.Watch,
		OpenViewer: f.OpenViewer,
		Cases:      f.Cases,
		CaseFilter: f.CaseFilter,
		Verbose:    f.Verbose,
		ConfigFile: f.ConfigFile,
	}
}
