package ocr

import "testing"

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{}.withDefaults()
	if got.Language != "eng" {
		t.Errorf("Language = %q, want eng", got.Language)
	}
	if got.PageSegMode != PSMAuto {
		t.Errorf("PageSegMode = %d, want %d", got.PageSegMode, PSMAuto)
	}

	custom := Options{Language: "eng+fra", PageSegMode: PSMSingleBlock, Whitelist: "0123456789"}.withDefaults()
	if custom.Language != "eng+fra" || custom.PageSegMode != PSMSingleBlock || custom.Whitelist != "0123456789" {
		t.Errorf("custom options overwritten: %+v", custom)
	}
}
