package sobject

import (
	"testing"

	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/spf13/afero"
)

const objectMetaXML = `<?xml version="1.0" encoding="UTF-8"?>
<CustomObject xmlns="http://soap.sforce.com/2006/04/metadata">
    <label>Invoice</label>
    <pluralLabel>Invoices</pluralLabel>
    <description>Tracks customer invoices</description>
</CustomObject>`

const fieldMetaXML = `<?xml version="1.0" encoding="UTF-8"?>
<CustomField xmlns="http://soap.sforce.com/2006/04/metadata">
    <fullName>Amount__c</fullName>
    <label>Amount</label>
    <type>Currency</type>
</CustomField>`

func TestBuildObjectMetadataCombinesObjectAndFields(t *testing.T) {
	fs := fsys.NewMem()
	if err := afero.WriteFile(fs, "/objects/Invoice__c/Invoice__c.object-meta.xml", []byte(objectMetaXML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/objects/Invoice__c/fields/Amount__c.field-meta.xml", []byte(fieldMetaXML), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := BuildObjectMetadata(fs, "Invoice__c",
		"/objects/Invoice__c/Invoice__c.object-meta.xml",
		"/objects/Invoice__c/fields")
	if err != nil {
		t.Fatal(err)
	}

	if meta.APIName != "Invoice__c" || meta.Label != "Invoice" || meta.PluralLabel != "Invoices" {
		t.Fatalf("got %#v", meta)
	}
	if len(meta.Fields) != 1 || meta.Fields[0].APIName != "Amount__c" || meta.Fields[0].Type != "Currency" {
		t.Fatalf("got fields %#v", meta.Fields)
	}
}

func TestBuildObjectMetadataToleratesMissingFieldsDir(t *testing.T) {
	fs := fsys.NewMem()
	if err := afero.WriteFile(fs, "/objects/Plain__c/Plain__c.object-meta.xml", []byte(objectMetaXML), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := BuildObjectMetadata(fs, "Plain__c",
		"/objects/Plain__c/Plain__c.object-meta.xml",
		"/objects/Plain__c/fields")
	if err != nil {
		t.Fatalf("expected a missing fields/ dir to be non-fatal, got %v", err)
	}
	if len(meta.Fields) != 0 {
		t.Fatalf("expected no fields, got %#v", meta.Fields)
	}
}

func TestBuildObjectMetadataFailsOnMissingObjectMeta(t *testing.T) {
	fs := fsys.NewMem()
	if _, err := BuildObjectMetadata(fs, "Missing__c", "/objects/Missing__c/Missing__c.object-meta.xml", "/objects/Missing__c/fields"); err == nil {
		t.Fatal("expected an error for a missing object-meta.xml")
	}
}
