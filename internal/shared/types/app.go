package types

// AppDefinition describes one launchable external program.
//
// Definitions are persisted as an ordered list; order is preserved across
// load/save but carries no execution semantics.
type AppDefinition struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Path             string `json:"path"`
	Arguments        string `json:"arguments"`
	Description      string `json:"description"`
	Enabled          bool   `json:"enabled"`
	Delay            uint64 `json:"delay"` // seconds to wait before launching at startup
	PreventDuplicate bool   `json:"prevent_duplicate"`
	AutoStart        bool   `json:"auto_start"` // reserved, informational only
}

// AppFields holds the mutable fields of a definition. The registry assigns
// the ID at creation; it is immutable thereafter.
type AppFields struct {
	Name             string `json:"name"`
	Path             string `json:"path"`
	Arguments        string `json:"arguments"`
	Description      string `json:"description"`
	Enabled          bool   `json:"enabled"`
	Delay            uint64 `json:"delay"`
	PreventDuplicate bool   `json:"prevent_duplicate"`
	AutoStart        bool   `json:"auto_start"`
}

// Definition materializes the fields into a definition with the given ID.
func (f AppFields) Definition(id string) AppDefinition {
	return AppDefinition{
		ID:               id,
		Name:             f.Name,
		Path:             f.Path,
		Arguments:        f.Arguments,
		Description:      f.Description,
		Enabled:          f.Enabled,
		Delay:            f.Delay,
		PreventDuplicate: f.PreventDuplicate,
		AutoStart:        f.AutoStart,
	}
}

// AppConfig is the persisted record: an ordered list of definitions.
type AppConfig struct {
	RegisteredApps []AppDefinition `json:"registered_apps"`
}

// RegistryStats contains registry statistics.
type RegistryStats struct {
	TotalApps   int `json:"total_apps"`
	EnabledApps int `json:"enabled_apps"`
	RunningApps int `json:"running_apps"`
}
