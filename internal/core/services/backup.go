package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Backup file identification.
const (
	BackupFormatName = "listing-studio-backup"
	BackupVersion    = 1
)

// backupFile is the self-describing document written by ExportBackup.
type backupFile struct {
	Format      string                     `json:"format"`
	Version     int                        `json:"version"`
	ExportedAt  time.Time                  `json:"exportedAt"`
	Properties  []domain.Property          `json:"properties"`
	Submissions []domain.ContactSubmission `json:"submissions"`
}

// ExportBackup serialises properties and their submissions. An empty ids
// list exports everything.
func (s *PersistenceService) ExportBackup(
	ctx context.Context, ids []string, format driving.BackupFormat,
) ([]byte, error) {
	file := backupFile{
		Format:      BackupFormatName,
		Version:     BackupVersion,
		ExportedAt:  s.now(),
		Properties:  []domain.Property{},
		Submissions: []domain.ContactSubmission{},
	}

	if len(ids) == 0 {
		all, err := s.properties.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		file.Properties = append(file.Properties, all...)
	} else {
		for _, id := range ids {
			p, err := s.properties.Get(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", id, err)
			}
			file.Properties = append(file.Properties, p)
		}
	}

	for _, p := range file.Properties {
		subs, err := s.submissions.ListSubmissions(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("export submissions of %s: %w", p.ID, err)
		}
		file.Submissions = append(file.Submissions, subs...)
	}

	data, err := encodeBackup(file, format)
	if err != nil {
		return nil, err
	}
	logger.Info("exported %d properties, %d submissions", len(file.Properties), len(file.Submissions))
	return data, nil
}

func encodeBackup(file backupFile, format driving.BackupFormat) ([]byte, error) {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	switch format {
	case driving.BackupJSON, "":
		return append(data, '\n'), nil
	case driving.BackupYAML:
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: backup format %q", domain.ErrInvalidInput, format)
	}
}

// decodeBackup reads a JSON or YAML backup file.
func decodeBackup(data []byte) (backupFile, error) {
	var file backupFile
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return file, fmt.Errorf("%w: backup is empty", domain.ErrParse)
	}

	raw := trimmed
	if trimmed[0] != '{' {
		var tree any
		if err := yaml.Unmarshal(trimmed, &tree); err != nil {
			return file, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		converted, err := json.Marshal(tree)
		if err != nil {
			return file, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		raw = converted
	}

	if err := json.Unmarshal(raw, &file); err != nil {
		return file, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if file.Format != BackupFormatName {
		return file, fmt.Errorf("%w: not a listing studio backup (format %q)", domain.ErrParse, file.Format)
	}
	if file.Version != BackupVersion {
		return file, fmt.Errorf("%w: unsupported backup version %d", domain.ErrParse, file.Version)
	}
	return file, nil
}

// ImportBackup parses a backup and stores its contents. Property ids that
// collide with stored properties, or repeat within the file, are replaced;
// submissions follow their property to its new id. Nothing is stored when
// any part of the file is invalid.
func (s *PersistenceService) ImportBackup(ctx context.Context, data []byte) (*driving.ImportReport, error) {
	file, err := decodeBackup(data)
	if err != nil {
		return nil, err
	}

	report := &driving.ImportReport{Renamed: make(map[string]string)}
	seen := make(map[string]bool, len(file.Properties))
	moved := make(map[string]string)
	properties := make([]domain.Property, 0, len(file.Properties))

	for _, p := range file.Properties {
		old := p.ID
		switch {
		case old == "":
			p.ID = s.newID()
		case seen[old]:
			p.ID = s.newID()
			if _, ok := report.Renamed[old]; !ok {
				report.Renamed[old] = p.ID
			}
		case s.exists(ctx, old):
			p.ID = s.newID()
			report.Renamed[old] = p.ID
			moved[old] = p.ID
		}
		seen[old] = true
		seen[p.ID] = true
		if p.ID != old {
			logger.Warn("import: property id %q collides, stored as %s", old, p.ID)
		}

		deduped, n, err := document.Deduplicate(p, s.newID)
		if err != nil {
			return nil, fmt.Errorf("%w: property %s: %v", domain.ErrParse, p.ID, err)
		}
		p = deduped
		if n > 0 {
			logger.Warn("import: replaced %d duplicate ids in property %s", n, p.ID)
		}
		if err := document.Validate(p); err != nil {
			return nil, fmt.Errorf("%w: property %s: %v", domain.ErrParse, p.ID, err)
		}
		properties = append(properties, p)
	}

	imported := make(map[string]bool, len(properties))
	for _, p := range properties {
		imported[p.ID] = true
	}
	submissions := make([]domain.ContactSubmission, 0, len(file.Submissions))
	for _, sub := range file.Submissions {
		if id, ok := moved[sub.PropertyID]; ok {
			sub.PropertyID = id
		}
		if !imported[sub.PropertyID] {
			return nil, fmt.Errorf("%w: submission %s belongs to no imported property", domain.ErrParse, sub.ID)
		}
		if sub.ID == "" {
			sub.ID = s.newID()
		}
		submissions = append(submissions, sub)
	}

	if err := s.properties.SaveAll(ctx, properties); err != nil {
		return nil, asStoreError("import", err)
	}
	for _, sub := range submissions {
		if err := s.submissions.AppendSubmission(ctx, sub); err != nil {
			return nil, asStoreError("import submissions", err)
		}
	}

	report.Properties = properties
	report.Submissions = len(submissions)
	logger.Info("imported %d properties, %d submissions", len(properties), len(submissions))
	return report, nil
}

func (s *PersistenceService) exists(ctx context.Context, id string) bool {
	_, err := s.properties.Get(ctx, id)
	return err == nil
}
