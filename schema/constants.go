package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// Category is the artifact category reported in a record.
	Category string

	// SourceKind is the detected kind of an artifact URL.
	SourceKind string

	// HardwareTarget is a deployment target for the size score.
	HardwareTarget string
)

// All output modes supported.
const (
	TextOut   OutputMode = "text" // default
	JSONOut   OutputMode = "json"
	NDJSONOut OutputMode = "ndjson"
	CSVOut    OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All artifact categories.
const (
	ModelCategory   Category = "MODEL"
	DatasetCategory Category = "DATASET"
	CodeCategory    Category = "CODE"
)

// All source kinds.
const (
	HFModelSource    SourceKind = "hf_model"
	HFDatasetSource  SourceKind = "hf_dataset"
	GitHubRepoSource SourceKind = "github_repo"
	UnknownSource    SourceKind = "unknown"
)

// Hardware targets, ordered from smallest to largest.
const (
	RaspberryPi HardwareTarget = "raspberry_pi"
	JetsonNano  HardwareTarget = "jetson_nano"
	DesktopPC   HardwareTarget = "desktop_pc"
	AWSServer   HardwareTarget = "aws_server"
)

// AllHardwareTargets lists the size score targets in output order.
var AllHardwareTargets = []HardwareTarget{RaspberryPi, JetsonNano, DesktopPC, AWSServer}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:   {},
	JSONOut:   {},
	NDJSONOut: {},
	CSVOut:    {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CategoryOf maps a source kind to its category. Unknown kinds have none.
func CategoryOf(kind SourceKind) (Category, bool) {
	switch kind {
	case HFModelSource:
		return ModelCategory, true
	case HFDatasetSource:
		return DatasetCategory, true
	case GitHubRepoSource:
		return CodeCategory, true
	default:
		return "", false
	}
}
