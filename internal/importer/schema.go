package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BacklogFile is the top-level YAML structure for a bulk backlog import.
// Refs are file-local handles used to link tasks to parents and sprints;
// they never leave the import and are replaced with UUIDs on conversion.
type BacklogFile struct {
	Sprints []SprintImport `yaml:"sprints,omitempty"`
	Tasks   []TaskImport   `yaml:"tasks"`
}

// SprintImport defines one sprint in the import file. Imported sprints
// always land in planning; starting them is a separate, explicit step.
type SprintImport struct {
	Ref       string `yaml:"ref"`
	Name      string `yaml:"name"`
	Goal      string `yaml:"goal,omitempty"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	Capacity  *int   `yaml:"capacity,omitempty"`
}

// TaskImport defines one task in the import file.
type TaskImport struct {
	Ref                string   `yaml:"ref"`
	Title              string   `yaml:"title"`
	Type               string   `yaml:"type,omitempty"`
	Priority           string   `yaml:"priority,omitempty"`
	Status             string   `yaml:"status,omitempty"`
	Points             *int     `yaml:"points,omitempty"`
	Assignees          []string `yaml:"assignees,omitempty"`
	Tags               []string `yaml:"tags,omitempty"`
	ParentRef          *string  `yaml:"parent_ref,omitempty"`
	SprintRef          *string  `yaml:"sprint_ref,omitempty"`
	DueDate            *string  `yaml:"due_date,omitempty"`
	Description        string   `yaml:"description,omitempty"`
	AcceptanceCriteria []string `yaml:"acceptance_criteria,omitempty"`
}

// LoadBacklogFile reads and parses a backlog import YAML file.
func LoadBacklogFile(path string) (*BacklogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file BacklogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &file, nil
}
