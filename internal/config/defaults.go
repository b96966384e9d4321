package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultHierarchyPath is where the full test hierarchy is read from
	DefaultHierarchyPath = "mustpass"
	// DefaultArchiveDir is the root case-list resources are read from
	DefaultArchiveDir = "."
	// DefaultConfigFile is the optional project config file
	DefaultConfigFile = "caselist.toml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "case-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".caselist"
	// DefaultStorage is the default results backend
	DefaultStorage = StorageJSON
	// DefaultProcessors is the default number of workers
	DefaultProcessors = 4
	// DefaultBatchSize is the default number of cases per test binary invocation
	DefaultBatchSize = 500
	// DefaultBinary is the default test binary
	DefaultBinary = "deqp-vk"
)

const (
	// StorageJSON keeps results in a JSON file under the project
	StorageJSON = "json"
	// StorageMySQL keeps results in a MySQL database
	StorageMySQL = "mysql"
)

// DefaultPathsToIgnore are the directories skipped when scanning for hierarchy files
var DefaultPathsToIgnore = []string{
	"build",
	"node_modules",
	"vendor",
	DefaultOutputJSONDir,
}

// Default database settings, overridden by DB_* environment variables
const (
	DefaultDBHost = "127.0.0.1"
	DefaultDBPort = "3306"
	DefaultDBUser = "root"
	DefaultDBName = "caselist"
)
