package formats

import (
	"encoding/json"
	"path/filepath"

	"github.com/sweepa/sweepa/internal/engine/model"
)

// SARIF v2.1.0 schema, same source the teacher cites in sarif.go.
const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
	toolName     = "sweepa"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// ruleDescriptions names the §6.2 taxonomy's human-readable rule text, one
// entry per closed issue kind.
var ruleDescriptions = map[model.IssueKind]string{
	model.IssueUnusedFile:          "A source file is never reachable from any entry point.",
	model.IssueUnusedDependency:    "A manifest-listed dependency is never imported anywhere in the project.",
	model.IssueMisplacedDependency: "A dependency is listed in the wrong manifest section for how it's used.",
	model.IssueUnlistedDependency:  "A package is imported but missing from the manifest.",
	model.IssueUnresolvedImport:    "An import specifier could not be resolved to a project file, builtin, or package.",
	model.IssueUnusedExported:      "An exported value is never used outside its declaring module.",
	model.IssueUnusedExportedType:  "An exported type is never used outside its declaring module.",
	model.IssueUnusedExport:        "An exported symbol has no references anywhere in the project.",
	model.IssueUnusedMethod:        "A class method is never called.",
	model.IssueUnusedParam:         "A function parameter is never read in its body.",
	model.IssueUnusedProperty:      "An instance property is never accessed.",
	model.IssueUnusedImport:        "An imported binding is never used in its importing file.",
	model.IssueUnusedEnumCase:      "An enum member is never referenced.",
	model.IssueAssignOnlyProperty:  "An instance property is written but never read.",
	model.IssueUnusedVariable:     "A variable is declared but never used.",
	model.IssueUnusedType:         "A type alias or interface is never referenced.",
	model.IssueRedundantExport:    "An export keyword is unnecessary because every reference stays within one boundary.",
}

// GenerateSARIF builds a SARIF v2.1.0 document from a final issue list.
// Every file URI is made relative to projectRoot so a report is safe to
// share outside the machine it was generated on.
func GenerateSARIF(issues []model.Issue, projectRoot, toolVersion string) ([]byte, error) {
	byKind := groupByKind(issues)
	rules := make([]sarifRule, 0, len(byKind))
	for _, kind := range sortedKinds(byKind) {
		rules = append(rules, sarifRule{
			ID:               string(kind),
			Name:             string(kind),
			ShortDescription: sarifMessage{Text: ruleDescriptions[kind]},
			DefaultConfig:    sarifRuleDefaultConfig{Level: sarifLevel(byKind[kind][0])},
		})
	}

	results := make([]sarifResult, 0, len(issues))
	for _, issue := range issues {
		results = append(results, sarifResult{
			RuleID:    string(issue.Kind),
			Level:     sarifLevel(issue),
			Message:   sarifMessage{Text: issue.Message},
			Locations: []sarifLocation{issueLocation(issue, projectRoot)},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool:    sarifTool{Driver: sarifDriver{Name: toolName, Version: toolVersion, Rules: rules}},
				Results: results,
			},
		},
	}
	return json.MarshalIndent(report, "", "  ")
}

// sarifLevel maps a §3.6 issue to a SARIF level: unresolved imports and
// unlisted dependencies are always errors (a broken reference), everything
// else follows its own confidence.
func sarifLevel(issue model.Issue) string {
	switch issue.Kind {
	case model.IssueUnresolvedImport, model.IssueUnlistedDependency:
		return "error"
	}
	switch issue.Confidence {
	case model.ConfidenceHigh:
		return "warning"
	default:
		return "note"
	}
}

func issueLocation(issue model.Issue, projectRoot string) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(projectRoot, issue.File),
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if issue.Line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{StartLine: issue.Line, StartColumn: issue.Column}
	}
	return loc
}

// relativeURI converts an absolute file path to a forward-slash relative
// URI anchored at projectRoot, the same conversion the teacher's sarif.go
// performs.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		if rel, err := filepath.Rel(projectRoot, filePath); err == nil {
			filePath = rel
		}
	}
	return filepath.ToSlash(filePath)
}
