package types

// Config holds the floor layout and engine parameters.
type Config struct {
	Tables        int    `json:"tables" yaml:"tables" mapstructure:"tables"`
	SeatsPerTable int    `json:"seats_per_table" yaml:"seats_per_table" mapstructure:"seats_per_table"`
	RosterPath    string `json:"roster_path" yaml:"roster_path" mapstructure:"roster_path"`
	MenuPath      string `json:"menu_path,omitempty" yaml:"menu_path,omitempty" mapstructure:"menu_path"`
	TablePolicy   string `json:"table_policy" yaml:"table_policy" mapstructure:"table_policy"`
	Ledger        bool   `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
	LogLevel      string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Table policies decide whether a table may hold more than one queued order.
const (
	// PolicyExclusive admits a new order only at a VACANT table.
	PolicyExclusive = "exclusive"
	// PolicyShared admits orders at VACANT or OCCUPIED tables (split checks);
	// a table is vacated when its last queued order completes.
	PolicyShared = "shared"
)

// Defaults used when a value is not configured.
const (
	DefaultTables        = 30
	DefaultSeatsPerTable = 4
	DefaultRosterPath    = "waitstaff.csv"
	DefaultLogLevel      = "info"
)

var knownPolicies = map[string]bool{
	PolicyExclusive: true,
	PolicyShared:    true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns the layout of the default floor: 30 four-seat tables,
// the built-in menu, exclusive table policy, and the shift ledger enabled.
func DefaultConfig() Config {
	return Config{
		Tables:        DefaultTables,
		SeatsPerTable: DefaultSeatsPerTable,
		RosterPath:    DefaultRosterPath,
		TablePolicy:   PolicyExclusive,
		Ledger:        true,
		LogLevel:      DefaultLogLevel,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty policy or log level is accepted and
// means the default.
func (c Config) Validate() error {
	if c.Tables <= 0 {
		return wrapf(ErrTablesInvalid, "%d", c.Tables)
	}
	if c.SeatsPerTable <= 0 {
		return wrapf(ErrSeatsInvalid, "%d", c.SeatsPerTable)
	}
	if c.TablePolicy != "" && !knownPolicies[c.TablePolicy] {
		return wrapf(ErrPolicyUnknown, "%q", c.TablePolicy)
	}
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return wrapf(ErrLogLevelUnknown, "%q", c.LogLevel)
	}
	return nil
}

// Policy returns the effective table policy.
func (c Config) Policy() string {
	if c.TablePolicy == "" {
		return PolicyExclusive
	}
	return c.TablePolicy
}
