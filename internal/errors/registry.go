package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Patch Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryPatch,
		Message:  "Invalid patch shape",
		Detail:   "The previous and next nodes for the same slot cannot be reconciled.",
	},
	"E002": {
		Category: CategoryPatch,
		Message:  "DOM node missing for virtual node",
		Detail:   "The live DOM no longer matches the previously rendered tree. Something outside the renderer mutated the mount point.",
	},
	"E003": {
		Category: CategoryPatch,
		Message:  "Unresolved lazy node",
		Detail:   "A lazy node reached the patch engine without being evaluated.",
	},

	// ============================================
	// Markup Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryMarkup,
		Message:  "Markup parse failed",
		Detail:   "The pre-rendered markup could not be parsed into DOM nodes.",
	},

	// ============================================
	// Snapshot Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
	},
	"E021": {
		Category: CategorySnapshot,
		Message:  "Snapshot store failure",
	},
	"E022": {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot name",
		Detail:   "Snapshot names must be non-empty and must not contain path separators or '..'.",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "hyperoop.json could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration does not match schema",
		Detail:   "A key is unknown or a value has the wrong type.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
