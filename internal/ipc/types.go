package ipc

import "pokedexd/internal/dex"

// Record is the wire representation of a dex record.
type Record struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Types       string `json:"types"`
	HP          int    `json:"hp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	SpAtk       int    `json:"sp_atk"`
	SpDef       int    `json:"sp_def"`
	Speed       int    `json:"speed"`
	FlavorText  string `json:"flavor_text,omitempty"`
	HeightDM    int    `json:"height_dm,omitempty"`
	WeightHG    int    `json:"weight_hg,omitempty"`
	Favourite   bool   `json:"favourite"`
}

// Evolution is the wire representation of an evolution edge.
type Evolution struct {
	FromID   int64  `json:"from_id"`
	ToID     int64  `json:"to_id"`
	Trigger  string `json:"trigger,omitempty"`
	MinLevel int    `json:"min_level,omitempty"`
	Item     string `json:"item,omitempty"`
}

// FromRecord converts a domain record for the wire.
func FromRecord(rec *dex.Record, favourite bool) Record {
	return Record{
		ID:          rec.ID,
		Name:        rec.Name,
		DisplayName: rec.DisplayName(),
		Types:       rec.TypeLine(),
		HP:          rec.Stats.HP,
		Attack:      rec.Stats.Attack,
		Defense:     rec.Stats.Defense,
		SpAtk:       rec.Stats.SpAtk,
		SpDef:       rec.Stats.SpDef,
		Speed:       rec.Stats.Speed,
		FlavorText:  rec.FlavorText,
		HeightDM:    rec.HeightDM,
		WeightHG:    rec.WeightHG,
		Favourite:   favourite,
	}
}

func fromEvolutions(chain []dex.Evolution) []Evolution {
	out := make([]Evolution, 0, len(chain))
	for _, evo := range chain {
		out = append(out, Evolution{
			FromID:   evo.FromID,
			ToID:     evo.ToID,
			Trigger:  evo.Trigger,
			MinLevel: evo.MinLevel,
			Item:     evo.Item,
		})
	}
	return out
}

// StatusRequest asks for daemon runtime information.
type StatusRequest struct{}

// StatusResponse carries daemon runtime information.
type StatusResponse struct {
	Running         bool   `json:"running"`
	PID             int    `json:"pid"`
	DBPath          string `json:"db_path"`
	LockPath        string `json:"lock_path"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	State           string `json:"state"`
	Cursor          int64  `json:"cursor"`
	StatusLine      string `json:"status_line,omitempty"`
	RecordCount     int    `json:"record_count"`
	FavouriteCount  int    `json:"favourite_count"`
	PopulateRunning bool   `json:"populate_running"`
	InputAttached   bool   `json:"input_attached"`
}

// StopRequest asks the daemon to shut down.
type StopRequest struct{}

// StopResponse confirms shutdown.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// ShowRequest resolves a record by numeric identifier or name.
type ShowRequest struct {
	Ref string `json:"ref"`
}

// ShowResponse carries a resolved record and its evolution chain.
type ShowResponse struct {
	Record     Record      `json:"record"`
	Evolutions []Evolution `json:"evolutions,omitempty"`
}

// ListRequest filters the cached record listing.
type ListRequest struct {
	Search         string `json:"search,omitempty"`
	FavouritesOnly bool   `json:"favourites_only,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

// ListResponse carries the matching records.
type ListResponse struct {
	Records []Record `json:"records"`
}

// FavouriteToggleRequest flips favourite membership for a cached record.
type FavouriteToggleRequest struct {
	ID int64 `json:"id"`
}

// FavouriteToggleResponse reports the new membership.
type FavouriteToggleResponse struct {
	Favourite bool `json:"favourite"`
}

// FavouritesRequest lists favourite records.
type FavouritesRequest struct{}

// FavouritesResponse carries the favourites in identifier order.
type FavouritesResponse struct {
	Records []Record `json:"records"`
}

// PressRequest injects a logical button press.
type PressRequest struct {
	Button string `json:"button"`
}

// PressResponse reports whether the press was delivered; debounce may
// suppress it.
type PressResponse struct {
	Delivered bool `json:"delivered"`
}

// PopulateStartRequest launches a background populate job.
type PopulateStartRequest struct{}

// PopulateStartResponse identifies the launched job.
type PopulateStartResponse struct {
	JobID string `json:"job_id"`
}

// DatabaseHealthRequest asks for database diagnostics.
type DatabaseHealthRequest struct{}

// DatabaseHealthResponse carries database diagnostics.
type DatabaseHealthResponse struct {
	DBPath           string `json:"db_path"`
	DatabaseExists   bool   `json:"database_exists"`
	DatabaseReadable bool   `json:"database_readable"`
	SchemaVersion    string `json:"schema_version"`
	IntegrityCheck   bool   `json:"integrity_check"`
	TotalRecords     int    `json:"total_records"`
	TotalFavourites  int    `json:"total_favourites"`
	Error            string `json:"error,omitempty"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports the test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
