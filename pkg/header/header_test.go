package header

import (
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	var h Header
	before := time.Now().UTC().Add(-time.Second)
	h.Init(KindRecommendation, "v1.2.3")

	if h.Kind != KindRecommendation {
		t.Errorf("Kind = %q, want %q", h.Kind, KindRecommendation)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if got := h.Metadata[MetadataVersion]; got != "v1.2.3" {
		t.Errorf("version = %q, want %q", got, "v1.2.3")
	}
	if ts := h.Timestamp(); ts.Before(before.Truncate(time.Second)) {
		t.Errorf("Timestamp() = %v, want after %v", ts, before)
	}
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindProductList, "")
	if _, ok := h.Metadata[MetadataVersion]; ok {
		t.Error("version should not be set")
	}
}

func TestInitResetsMetadata(t *testing.T) {
	h := Header{Metadata: map[string]string{"stale": "x", MetadataVersion: "old"}}
	h.Init(KindRuleReload, "")
	if _, ok := h.Metadata["stale"]; ok {
		t.Error("stale metadata should be dropped")
	}
	if _, ok := h.Metadata[MetadataVersion]; ok {
		t.Error("version should not survive Init")
	}
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindRecommendation, KindProductList, KindRuleReload} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("Snapshot").IsValid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestTimestampMissing(t *testing.T) {
	var nilHeader *Header
	if !nilHeader.Timestamp().IsZero() {
		t.Error("nil header should have zero timestamp")
	}
	if !(&Header{}).Timestamp().IsZero() {
		t.Error("empty header should have zero timestamp")
	}
	bad := &Header{Metadata: map[string]string{MetadataTimestamp: "yesterday"}}
	if !bad.Timestamp().IsZero() {
		t.Error("unparsable timestamp should be zero")
	}
}
