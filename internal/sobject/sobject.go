// Package sobject parses the Salesforce SObject metadata XML pairs
// (spec.md §4.6): an `Object.object-meta.xml` file alongside a
// `fields/*.field-meta.xml` directory, both Metadata API XML documents.
package sobject

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/apexlang/apex-lsp/internal/fsys"
)

// objectMeta mirrors the subset of CustomObject XML this server reads.
type objectMeta struct {
	XMLName     xml.Name `xml:"CustomObject"`
	Label       string   `xml:"label"`
	PluralLabel string   `xml:"pluralLabel"`
	Description string   `xml:"description"`
}

// fieldMeta mirrors the subset of CustomField XML this server reads.
type fieldMeta struct {
	XMLName     xml.Name `xml:"CustomField"`
	FullName    string   `xml:"fullName"`
	Label       string   `xml:"label"`
	Type        string   `xml:"type"`
	Description string   `xml:"description"`
}

// FieldMetadata is one parsed field-meta.xml.
type FieldMetadata struct {
	APIName     string `json:"apiName"`
	Label       string `json:"label,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ObjectMetadata is the persisted shape for one SObject (spec.md §4.6):
// the object-level metadata plus every field found under fields/.
type ObjectMetadata struct {
	APIName     string          `json:"apiName"`
	Label       string          `json:"label,omitempty"`
	PluralLabel string          `json:"pluralLabel,omitempty"`
	Description string          `json:"description,omitempty"`
	Fields      []FieldMetadata `json:"fields,omitempty"`
}

// ParseObjectMeta parses the object-meta.xml file at path.
func ParseObjectMeta(fs fsys.FS, path string) (objectMeta, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return objectMeta{}, fmt.Errorf("sobject: read %s: %w", path, err)
	}
	var meta objectMeta
	if err := xml.Unmarshal(data, &meta); err != nil {
		return objectMeta{}, fmt.Errorf("sobject: parse %s: %w", path, err)
	}
	return meta, nil
}

// ParseFieldMeta parses one fields/*.field-meta.xml file.
func ParseFieldMeta(fs fsys.FS, path string) (FieldMetadata, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return FieldMetadata{}, fmt.Errorf("sobject: read %s: %w", path, err)
	}
	var meta fieldMeta
	if err := xml.Unmarshal(data, &meta); err != nil {
		return FieldMetadata{}, fmt.Errorf("sobject: parse %s: %w", path, err)
	}
	return FieldMetadata{
		APIName:     meta.FullName,
		Label:       meta.Label,
		Type:        meta.Type,
		Description: meta.Description,
	}, nil
}

// BuildObjectMetadata parses an object-meta.xml at objectMetaPath and every
// *.field-meta.xml in fieldsDir (non-recursive; Salesforce never nests
// fields/ directories further), returning the combined ObjectMetadata.
func BuildObjectMetadata(fs fsys.FS, apiName, objectMetaPath, fieldsDir string) (ObjectMetadata, error) {
	meta, err := ParseObjectMeta(fs, objectMetaPath)
	if err != nil {
		return ObjectMetadata{}, err
	}

	result := ObjectMetadata{
		APIName:     apiName,
		Label:       meta.Label,
		PluralLabel: meta.PluralLabel,
		Description: meta.Description,
	}

	entries, err := afero.ReadDir(fs, fieldsDir)
	if err != nil {
		// fields/ is optional: some SObjects declare no custom fields.
		return result, nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".field-meta.xml") {
			continue
		}
		fieldPath := joinPath(fieldsDir, entry.Name())
		field, err := ParseFieldMeta(fs, fieldPath)
		if err != nil {
			continue
		}
		result.Fields = append(result.Fields, field)
	}
	return result, nil
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
