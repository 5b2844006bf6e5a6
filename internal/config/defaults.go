package config

// DefaultConfigDir is the default location for workpulse configuration.
const DefaultConfigDir = "~/.config/workpulse"

// DefaultReplicaPath is the default location of the SQLite replica.
const DefaultReplicaPath = "~/.config/workpulse/replica.db"

// DefaultSourceBaseURL is the default document-store endpoint.
const DefaultSourceBaseURL = "http://localhost:8090"

// DefaultSourceTimeoutSec is the per-request timeout for document-store calls.
const DefaultSourceTimeoutSec = 15

// DefaultRole is the role assumed when none is configured or passed.
const DefaultRole = "member"

// DefaultRangeDays is the date-range length used when no --from/--to pair
// is given.
const DefaultRangeDays = 30

// DefaultServeAddr is the listen address for the HTTP API.
const DefaultServeAddr = ":8475"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
