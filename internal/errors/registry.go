package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Tree Errors (M001-M009)
	// ============================================

	"M001": {
		Category: CategoryTree,
		Message:  "Invalid tag",
		Detail:   "The tag name is not in the permitted tag set.",
		DocURL:   "https://vango.dev/docs/markup/errors/M001",
	},
	"M002": {
		Category: CategoryTree,
		Message:  "Duplicate identifier",
		Detail:   "An id attribute value is already used in the destination tree.",
		DocURL:   "https://vango.dev/docs/markup/errors/M002",
	},
	"M003": {
		Category: CategoryTree,
		Message:  "Invalid argument",
		Detail:   "The operation received an argument it cannot act on.",
		DocURL:   "https://vango.dev/docs/markup/errors/M003",
	},

	// ============================================
	// Codec Errors (M010-M019)
	// ============================================

	"M010": {
		Category: CategoryCodec,
		Message:  "Malformed structured map",
		Detail:   "The input does not have the {name, value, attrs, children} shape.",
		DocURL:   "https://vango.dev/docs/markup/errors/M010",
	},
	"M011": {
		Category: CategoryCodec,
		Message:  "Unsupported map format",
		Detail:   "Structured maps are read from .json, .yaml or .yml files.",
		DocURL:   "https://vango.dev/docs/markup/errors/M011",
	},

	// ============================================
	// Configuration Errors (M020-M029)
	// ============================================

	"M020": {
		Category: CategoryConfig,
		Message:  "Invalid markup.json",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://vango.dev/docs/markup/errors/M020",
	},
	"M021": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
		DocURL:   "https://vango.dev/docs/markup/errors/M021",
	},

	// ============================================
	// Output Errors (M030-M039)
	// ============================================

	"M030": {
		Category: CategoryOutput,
		Message:  "Document write failed",
		Detail:   "The rendered document could not be written to its sink.",
		DocURL:   "https://vango.dev/docs/markup/errors/M030",
	},

	// ============================================
	// CLI Errors (M040-M049)
	// ============================================

	"M040": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		Detail:   "The command was called with missing or conflicting flags.",
		DocURL:   "https://vango.dev/docs/markup/errors/M040",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
