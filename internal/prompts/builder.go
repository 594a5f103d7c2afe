package prompts

import (
	"fmt"

	"github.com/briteco/briteroles/internal/types"
)

// promptFile is the embedded template file for all BriteRoles operations.
const promptFile = "briteroles.json"

// Operation identifies one of the prompt-building operations.
type Operation string

// Supported operations.
const (
	OpGenerate Operation = "generate"
	OpAdapt    Operation = "adapt"
	OpRewrite  Operation = "rewrite"
)

// Default strings substituted for optional fields left empty by the caller.
// Substitution must be total: an empty field never leaves a bare placeholder.
const (
	DefaultNotSpecified = "Not specified"
	DefaultNoNotes      = "No additional notes provided."
	DefaultNoAdaptNotes = "No additional notes."
)

// operationKeys maps operations to template keys in the prompt file.
var operationKeys = map[Operation]string{
	OpGenerate: "generate_jd",
	OpAdapt:    "adapt_jd",
	OpRewrite:  "rewrite_section",
}

// SystemPrompt returns the fixed BriteCo voice and tone system prompt.
func SystemPrompt() string {
	return MustGet(promptFile, "system")
}

// Build formats the prompt for the named operation by substituting every
// placeholder with the matching field value. Unknown operations are a
// configuration error.
func Build(op Operation, fields map[string]string) (string, error) {
	key, ok := operationKeys[op]
	if !ok {
		return "", fmt.Errorf("unknown prompt operation %q", op)
	}

	template, err := Get(promptFile, key)
	if err != nil {
		return "", err
	}

	return Format(template, fields), nil
}

// BuildGenerate formats the generate-jd prompt from a role request.
func BuildGenerate(req *types.RoleRequest) (string, error) {
	fields := roleFields(req)
	fields["Notes"] = orDefault(req.Notes, DefaultNoNotes)
	return Build(OpGenerate, fields)
}

// BuildAdapt formats the adapt-jd prompt from an adapt request.
func BuildAdapt(req *types.AdaptRequest) (string, error) {
	fields := roleFields(&req.RoleRequest)
	fields["Notes"] = orDefault(req.Notes, DefaultNoAdaptNotes)
	fields["OriginalJD"] = req.OriginalJD
	return Build(OpAdapt, fields)
}

// BuildRewrite formats the rewrite-section prompt.
func BuildRewrite(req *types.RewriteRequest) (string, error) {
	return Build(OpRewrite, map[string]string{
		"Content": req.Content,
		"Tone":    req.Tone,
	})
}

// roleFields maps the shared role fields into template substitutions,
// normalizing empty optional fields to their documented defaults. The derived
// work-type line is computed here and injected like any other field.
func roleFields(req *types.RoleRequest) map[string]string {
	return map[string]string{
		"Title":           req.Title,
		"Department":      orDefault(req.Department, DefaultNotSpecified),
		"ReportsTo":       orDefault(req.ReportsTo, DefaultNotSpecified),
		"Location":        orDefault(req.Location, DefaultNotSpecified),
		"ExperienceLevel": orDefault(req.ExperienceLevel, DefaultNotSpecified),
		"WorkTypeLine":    req.WorkTypeLine(),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
