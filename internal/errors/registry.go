package errors

// Template defines a registered error.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

var registry = map[string]Template{
	// Configuration
	"L001": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check loadboard.json for JSON syntax errors.",
	},
	"L002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"L003": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
	},

	// Fixtures and raw records
	"L010": {
		Category:   CategoryData,
		Message:    "Cannot read fixture directory",
		Suggestion: "Point data.dir or LOADBOARD_DATA at a directory of *.yaml group files.",
	},
	"L011": {
		Category: CategoryData,
		Message:  "Invalid group fixture",
	},
	"L012": {
		Category:   CategoryValidation,
		Message:    "Invalid workload series",
		Suggestion: "Every series needs exactly 52 weekly values; sport and maxsus take 0 or 1.",
	},
	"L013": {
		Category: CategoryValidation,
		Message:  "Duplicate group id",
	},
	"L014": {
		Category:   CategoryData,
		Message:    "No groups found",
		Suggestion: "Add at least one group fixture, or run without data.dir to use the bundled groups.",
	},
	"L020": {
		Category:   CategoryData,
		Message:    "Invalid raw record",
		Suggestion: "Each week is six lines: aerob, aralash, anaerob, sakrash (numbers), then sport and maxsus (any text marks the week).",
	},
	"L021": {
		Category: CategoryData,
		Message:  "Incomplete raw record",
	},

	// Remote storage
	"L030": {
		Category:   CategoryStorage,
		Message:    "Cannot fetch fixtures from S3",
		Suggestion: "Check data.s3.bucket, data.s3.region and the AWS credentials in the environment.",
	},

	// Runtime
	"L040": {
		Category: CategoryRuntime,
		Message:  "Group not found",
	},

	// Protocol
	"L050": {
		Category: CategoryProtocol,
		Message:  "Malformed live frame",
	},
	"L051": {
		Category: CategoryProtocol,
		Message:  "Unsupported live event",
	},
	"L052": {
		Category:   CategoryRuntime,
		Message:    "Event queue full",
		Suggestion: "The session is processing events slower than they arrive; retry the action.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
