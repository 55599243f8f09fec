package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Port != 5432 || cfg.Database.Database != "catops" {
		t.Fatalf("defaults not applied: %+v", cfg.Database)
	}
	if cfg.Imports.Parallelism != 1 {
		t.Fatalf("parallelism = %d", cfg.Imports.Parallelism)
	}
	if cfg.Defaults.Status != "DRAFT" {
		t.Fatalf("default status = %q", cfg.Defaults.Status)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Host = "db.internal"
	cfg.Imports.DefaultVendor = "carhartt"
	cfg.Vendors = map[string]*VendorProfile{
		"acme": {
			Description: "Acme custom sheets",
			FieldAliases: map[string][]string{
				FieldSKU:  {"item no"},
				FieldName: {"title"},
			},
			StyleFromSKU: true,
			Variants:     VariantRules{SuffixVocabulary: true},
			Images:       ImagesFlat,
		},
	}

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Database.Host != "db.internal" {
		t.Fatalf("host = %q", loaded.Database.Host)
	}
	if loaded.Imports.DefaultVendor != "carhartt" {
		t.Fatalf("default vendor = %q", loaded.Imports.DefaultVendor)
	}

	acme, ok := loaded.Profile("acme")
	if !ok {
		t.Fatal("custom vendor profile lost in round trip")
	}
	if !acme.StyleFromSKU || !acme.Variants.SuffixVocabulary {
		t.Fatalf("profile flags lost: %+v", acme)
	}
	if acme.FieldAliases[FieldSKU][0] != "item no" {
		t.Fatalf("aliases lost: %v", acme.FieldAliases)
	}
	if acme.Name != "acme" {
		t.Fatalf("profile name should default to its key, got %q", acme.Name)
	}
}

func TestLoadFromAppliesPartialDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "database:\n  host: pg.example.com\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Host != "pg.example.com" {
		t.Fatalf("host = %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 || cfg.Database.SSLMode != "prefer" {
		t.Fatalf("missing values not defaulted: %+v", cfg.Database)
	}
	if cfg.Storage.Backend != "local" {
		t.Fatalf("backend = %q", cfg.Storage.Backend)
	}
}

func TestBuiltinProfilesCoverKnownVendors(t *testing.T) {
	profiles := BuiltinProfiles()
	for _, vendor := range []string{"gsa", "pip", "carhartt", "wolverine", "occunomix"} {
		p, ok := profiles[vendor]
		if !ok {
			t.Fatalf("missing builtin profile %q", vendor)
		}
		if len(p.FieldAliases[FieldSKU]) == 0 {
			t.Fatalf("profile %q has no identifier aliases", vendor)
		}
	}

	carhartt := profiles["carhartt"]
	if carhartt.BrandPrefix != "CHT-" || !carhartt.StyleFromSKU {
		t.Fatalf("carhartt profile: %+v", carhartt)
	}
	if profiles["pip"].Images != ImagesIndex || !profiles["pip"].ImageMapCSV {
		t.Fatalf("pip image settings: %+v", profiles["pip"])
	}
	if !profiles["occunomix"].Variants.NameDescriptors {
		t.Fatal("occunomix should extract name descriptors")
	}
}

func TestProfilesMergeOverridesBuiltins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vendors = map[string]*VendorProfile{
		"carhartt": {
			Description:  "overridden",
			FieldAliases: map[string][]string{FieldSKU: {"custom sku"}},
		},
	}

	p, ok := cfg.Profile("carhartt")
	if !ok {
		t.Fatal("profile missing")
	}
	if p.Description != "overridden" {
		t.Fatalf("override lost: %q", p.Description)
	}
	// Builtins stay available alongside.
	if _, ok := cfg.Profile("wolverine"); !ok {
		t.Fatal("builtin lost after merge")
	}
}

func TestGroupsByStyle(t *testing.T) {
	styled := &VendorProfile{FieldAliases: map[string][]string{FieldStyle: {"style"}}}
	if !styled.GroupsByStyle() {
		t.Fatal("style alias should enable grouping")
	}
	derived := &VendorProfile{StyleFromSKU: true}
	if !derived.GroupsByStyle() {
		t.Fatal("style-from-sku should enable grouping")
	}
	plain := &VendorProfile{}
	if plain.GroupsByStyle() {
		t.Fatal("plain profile should import per row")
	}
}
