package adapter

import (
	"os"

	"gopkg.in/yaml.v3"

	m "torture.dev/pkg/torture/internal/model"
)

// reportVersion is bumped when the on-disk report layout changes.
const reportVersion = 1

// Report is the persisted form of one batch run.
type Report struct {
	Version int           `yaml:"version"`
	Entries []ReportEntry `yaml:"results"`
}

// ReportEntry is the persisted form of one suite outcome.
type ReportEntry struct {
	Suite   string `yaml:"suite"`
	Outcome string `yaml:"outcome"`
	Allowed bool   `yaml:"allowed,omitempty"`
	Reason  string `yaml:"reason,omitempty"`
	OutDir  string `yaml:"out_dir,omitempty"`
}

// ReportStore persists batch results so they can be inspected later.
type ReportStore interface {
	SaveReport(path m.Path, entries []m.BatchEntry) error
	LoadReport(path m.Path) (Report, error)
}

// YAMLReportStore stores reports as YAML documents on disk.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the batch entries to path as a YAML report.
func (s *YAMLReportStore) SaveReport(path m.Path, entries []m.BatchEntry) error {
	report := Report{Version: reportVersion}

	for _, entry := range entries {
		report.Entries = append(report.Entries, toReportEntry(entry))
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(string(path), data, 0o600)
}

// LoadReport reads a previously saved YAML report.
func (s *YAMLReportStore) LoadReport(path m.Path) (Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return Report{}, err
	}

	return report, nil
}

func toReportEntry(entry m.BatchEntry) ReportEntry {
	out := ReportEntry{
		Suite:   string(entry.Suite),
		Outcome: entry.Outcome.Kind.String(),
		Allowed: entry.Outcome.Allowed,
	}

	switch {
	case entry.Outcome.Compile != nil:
		out.Reason = entry.Outcome.Compile.Error()
	case entry.Outcome.Run != nil:
		out.Reason = entry.Outcome.Run.Error()
	}

	if entry.Outcome.OutDir != nil {
		out.OutDir = string(entry.Outcome.OutDir.Path())
	}

	return out
}
